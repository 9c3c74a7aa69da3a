//go:build windows

package selectui

import (
	"os"
	"os/exec"
)

// execPOSIX is unreachable on Windows (Launch routes Windows through
// exec.Command directly) but is kept so the package builds for all
// platforms.
func execPOSIX(name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}
