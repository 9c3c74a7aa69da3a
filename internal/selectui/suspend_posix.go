//go:build !windows

package selectui

import (
	"os"
	"syscall"
)

// raiseStop sends SIGSTOP to the current process, the POSIX suspend
// spec.md section 4.4 describes; the shell resumes it later with SIGCONT.
func raiseStop() error {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Signal(syscall.SIGSTOP)
}
