//go:build windows

package selectui

import "errors"

// raiseStop has no Windows equivalent; Ctrl-Z is POSIX-only per spec.md
// section 4.4.
func raiseStop() error {
	return errors.New("selectui: suspend is not supported on windows")
}
