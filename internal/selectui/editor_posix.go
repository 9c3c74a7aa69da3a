//go:build !windows

package selectui

import (
	"os"
	"os/exec"
	"syscall"
)

// execPOSIX replaces the current process image with the editor, so it
// inherits the controlling terminal directly rather than running as a
// child under tgrep.
func execPOSIX(name string, args []string) error {
	bin, err := exec.LookPath(name)
	if err != nil {
		return err
	}
	argv := append([]string{bin}, args...)
	return syscall.Exec(bin, argv, os.Environ())
}
