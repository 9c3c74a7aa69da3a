// Package term owns the alternate-screen terminal primitive described
// in spec.md section 4.4: claiming raw mode and the alternate screen,
// installing a panic hook that restores the terminal before re-raising,
// and releasing everything on give.
//
// Grounded on the teacher's internal/progress TTY-detection idiom
// (golang.org/x/term.IsTerminal against a file descriptor), generalised
// from a one-shot check into a scoped acquire/release resource.
package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	disableWrap    = "\x1b[?7l"
	enableWrap     = "\x1b[?7h"
)

// Terminal is the scoped resource: claim() acquires raw mode and the
// alternate screen; give() releases both. Every exit path - normal
// return, quit, or panic - must route through give before the process
// exits or hands control to an editor.
type Terminal struct {
	w        io.Writer
	fd       int
	oldState *term.State
	claimed  bool
	mu       sync.Mutex

	width, height int
}

// New builds a Terminal writing to stdout. IsTTY reports whether stdout
// is a real terminal; callers should fall back to plain writing (the
// Writer package) when it is false, mirroring the teacher's isTTY guard
// in internal/progress.
func New() *Terminal {
	return &Terminal{w: os.Stdout, fd: int(os.Stdout.Fd())}
}

// IsTTY reports whether this terminal's file descriptor is attached to a
// real terminal.
func (t *Terminal) IsTTY() bool { return term.IsTerminal(t.fd) }

var (
	hookMu       sync.Mutex
	activeHook   *Terminal
	hookInstalled bool
)

// Claim enters the alternate screen, hides the cursor, disables line
// wrap, switches the terminal to raw mode, and installs a panic-recovery
// path that restores the terminal before any panic propagates further.
// The panic hook is the one shared global mutation point (spec.md
// section 5) and is installed/uninstalled strictly around Claim/Give.
func (t *Terminal) Claim() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.claimed {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("term: enable raw mode: %w", err)
	}
	t.oldState = state
	fmt.Fprint(t.w, enterAltScreen+hideCursor+disableWrap)
	t.claimed = true

	w, h, err := term.GetSize(t.fd)
	if err == nil {
		t.width, t.height = w, h
	}

	hookMu.Lock()
	activeHook = t
	hookInstalled = true
	hookMu.Unlock()
	return nil
}

// Give undoes Claim: flushes, restores cook mode, shows the cursor,
// re-enables line wrap, and leaves the alternate screen. Safe to call
// more than once.
func (t *Terminal) Give() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.claimed {
		return
	}
	fmt.Fprint(t.w, enableWrap+showCursor+exitAltScreen)
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
	}
	t.claimed = false

	hookMu.Lock()
	if activeHook == t {
		activeHook = nil
		hookInstalled = false
	}
	hookMu.Unlock()
}

// RecoverTerminal restores any currently-claimed terminal. Call this
// first in a deferred recover() so a panic anywhere in the UI loop never
// leaves the user's shell in raw mode / the alternate screen, per
// spec.md section 7's panic-hook requirement.
func RecoverTerminal() {
	hookMu.Lock()
	t := activeHook
	installed := hookInstalled
	hookMu.Unlock()
	if installed && t != nil {
		t.Give()
	}
}

// SetDims updates the terminal's remembered width/height, called after a
// resize event.
func (t *Terminal) SetDims(w, h int) {
	t.mu.Lock()
	t.width, t.height = w, h
	t.mu.Unlock()
}

// Dims returns the terminal's last-known width and height.
func (t *Terminal) Dims() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Clear erases the whole screen and homes the cursor.
func (t *Terminal) Clear() {
	fmt.Fprint(t.w, "\x1b[2J\x1b[H")
}

// Write implements io.Writer, delegating to the underlying stream, so
// the Terminal can be used anywhere an io.Writer is expected (e.g. by
// internal/render's formatters).
func (t *Terminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}
