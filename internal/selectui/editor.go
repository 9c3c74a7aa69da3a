// editor.go resolves and launches the editor a committed selection
// opens in, per spec.md section 4.4's commit rule and open-strategy
// table. Platform branching follows the teacher's runtime.GOOS idiom
// from internal/version.
package selectui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jpl-au/tgrep/internal/options"
)

// ResolveEditor picks the editor command: explicit --editor, else
// $EDITOR, else a platform fallback (open on macOS, "cmd /C start" on
// Windows, xdg-open on POSIX).
func ResolveEditor(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "cmd /C start"
	default:
		return "xdg-open"
	}
}

// ResolveStrategy returns explicit if set, else infers one from the
// editor's basename per spec.md section 4.4's inference table.
func ResolveStrategy(explicit *options.OpenStrategy, editorCmd string) options.OpenStrategy {
	if explicit != nil {
		return *explicit
	}
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return options.OpenDefault
	}
	base := strings.ToLower(filepath.Base(fields[0]))
	switch base {
	case "vi", "vim", "nvim", "nano", "emacs", "jove", "kak", "micro":
		return options.OpenVi
	case "hx":
		return options.OpenHx
	case "code":
		return options.OpenCode
	case "jed", "xjed":
		return options.OpenJed
	default:
		return options.OpenDefault
	}
}

// BuildArgs formats the editor invocation's argument vector for path
// and an optional line number, per spec.md section 4.4's open-strategy
// argument-shape table.
func BuildArgs(strategy options.OpenStrategy, path string, line int, hasLine bool) []string {
	if !hasLine {
		return []string{path}
	}
	switch strategy {
	case options.OpenVi:
		return []string{fmt.Sprintf("+%d", line), path}
	case options.OpenHx:
		return []string{fmt.Sprintf("%s:%d", path, line)}
	case options.OpenCode:
		return []string{"--goto", fmt.Sprintf("%s:%d", path, line)}
	case options.OpenJed:
		return []string{"-g", fmt.Sprintf("%d", line), path}
	default:
		return []string{path}
	}
}

// Launch runs the editor command against path/line, replacing the
// current process image on POSIX (so the editor inherits the terminal
// directly) and spawning a child and waiting on Windows, per spec.md
// section 4.4's platform split. The terminal must already have been
// released (Terminal.Give) before calling Launch.
func Launch(editorCmd string, strategy options.OpenStrategy, path string, line int, hasLine bool) error {
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return fmt.Errorf("selectui: no editor command configured")
	}
	args := append(append([]string{}, fields[1:]...), BuildArgs(strategy, path, line, hasLine)...)

	if runtime.GOOS == "windows" {
		cmd := exec.Command(fields[0], args...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		return cmd.Run()
	}
	return execPOSIX(fields[0], args)
}
