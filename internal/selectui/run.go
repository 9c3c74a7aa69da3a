// run.go drives the selection loop itself: read one event, update
// State, redraw, repeat until commit or quit. This is the single
// suspension point per iteration spec.md section 5 requires - exactly
// one blocking read, no other awaits - built on internal/term's
// claim/give terminal primitive.
package selectui

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/render"
	"github.com/jpl-au/tgrep/internal/selectionfile"
	"github.com/jpl-au/tgrep/internal/term"
)

// Result reports how the selection loop ended.
type Result struct {
	Quit      bool
	Committed bool
	Path      string
	Line      int
	HasLine   bool
}

// Run claims the terminal, drives the event loop over entries, and
// returns once the user commits a selection or quits. On commit it
// either writes opts.SelectionFile (if configured) or launches the
// editor directly; either way the terminal has already been released
// by the time Run returns.
func Run(t *term.Terminal, entries []render.Entry, opts options.Options) (Result, error) {
	if err := t.Claim(); err != nil {
		return Result{}, fmt.Errorf("selectui: claim terminal: %w", err)
	}
	defer t.Give()

	w, h := t.Dims()
	if h < 1 {
		h = 24
	}
	st := New(entries, w, h)
	reader := NewReader(os.Stdin)
	styles := render.StylesFor(opts)
	rOpts := render.OptsFor(opts, w)

	cursorPos := CursorMiddle
	var mouseDownRow int
	var mouseArmed bool

	redraw(t, st, styles, rOpts)

	for {
		ev, err := reader.ReadEvent()
		if err != nil {
			if err == io.EOF {
				return Result{Quit: true}, nil
			}
			return Result{}, fmt.Errorf("selectui: read event: %w", err)
		}

		if st.PopupOpen {
			switch ev.Kind {
			case KeyCtrlC:
				return Result{Quit: true}, nil
			case KeyCtrlZ:
				if res, quit := doSuspend(t, st, styles, rOpts); quit {
					return res, nil
				}
			case KeyRune:
				if ev.Rune == 'q' {
					st.PopupOpen = false
					redraw(t, st, styles, rOpts)
				}
			}
			continue
		}

		switch ev.Kind {
		case KeyCtrlC:
			return Result{Quit: true}, nil
		case KeyCtrlZ:
			if res, quit := doSuspend(t, st, styles, rOpts); quit {
				return res, nil
			}
			continue
		case KeyEnter:
			res, err := commit(t, st, opts)
			if err != nil || res.Committed {
				return res, err
			}
		case KeyUp:
			st.MoveSmall(false)
		case KeyDown:
			st.MoveSmall(true)
		case KeyPgUp:
			st.PageUp()
		case KeyPgDown:
			st.PageDown()
		case KeyHome:
			st.First()
		case KeyEnd:
			st.Last()
		case KeyMouse:
			switch ev.Mouse {
			case MouseWheelUp:
				st.ScrollBy(-smallJump)
			case MouseWheelDown:
				st.ScrollBy(smallJump)
			case MouseLeftDown:
				mouseDownRow, mouseArmed = ev.Row, true
			case MouseLeftUp:
				if mouseArmed && ev.Row == mouseDownRow {
					st.ClickRow(ev.Row)
				}
				mouseArmed = false
			}
		case KeyRune:
			switch ev.Rune {
			case 'j', 'n':
				st.MoveSmall(true)
			case 'k', 'p':
				st.MoveSmall(false)
			case 'J', 'N':
				st.MoveBig(true)
			case 'K', 'P':
				st.MoveBig(false)
			case '}', ']':
				st.NextPathEntry()
			case '{', '[':
				st.PrevPathEntry()
			case ')', 'd':
				st.NextSameDepth()
			case '(', 'u':
				st.PrevSameDepth()
			case 'G', '>':
				st.Last()
			case 'g', '<':
				st.First()
			case 'f':
				st.PageDown()
			case 'b':
				st.PageUp()
			case 'z', 'l':
				cursorPos = st.CycleCursor(cursorPos)
			case 'v':
				if info, err := st.Selected().OpenInfo(); err == nil && info.HasLine {
					if body, err := Preview(info.Path, info.Line, h-2); err == nil {
						st.PopupBody = body
						st.PopupOpen = true
					}
				}
			case 'h':
				body, err := RenderHelp(w)
				if err == nil {
					st.PopupBody = body
					st.PopupOpen = true
				}
			case 'q':
				return Result{Quit: true}, nil
			}
		}

		redraw(t, st, styles, rOpts)
	}
}

// commit resolves the selected entry's open target, and either writes
// the selection-file or hands off to the editor, per spec.md section
// 4.4's commit rule.
func commit(t *term.Terminal, st *State, opts options.Options) (Result, error) {
	info, err := st.Selected().OpenInfo()
	if err != nil {
		st.PopupBody = "cannot open this entry: " + err.Error()
		st.PopupOpen = true
		t.Clear()
		fmt.Fprint(t, st.PopupBody)
		return Result{}, nil
	}

	if opts.SelectionFile != "" {
		if err := selectionfile.Write(opts.SelectionFile, info.Path, info.Line, info.HasLine); err != nil {
			return Result{}, err
		}
		return Result{Committed: true, Path: info.Path, Line: info.Line, HasLine: info.HasLine}, nil
	}

	t.Give()
	editorCmd := ResolveEditor(opts.Editor)
	strategy := ResolveStrategy(opts.OpenStrategy, editorCmd)
	if err := Launch(editorCmd, strategy, info.Path, info.Line, info.HasLine); err != nil {
		return Result{}, fmt.Errorf("selectui: launch editor: %w", err)
	}
	return Result{Committed: true, Path: info.Path, Line: info.Line, HasLine: info.HasLine}, nil
}

// doSuspend implements Ctrl-Z: release the terminal, raise SIGSTOP, and
// on resume reclaim and redraw, per spec.md section 4.4. It reports
// quit=true when the process should exit instead of resuming (the stop
// signal could not be delivered).
func doSuspend(t *term.Terminal, st *State, styles render.Styles, rOpts render.RenderOptions) (Result, bool) {
	t.Give()
	if err := raiseStop(); err != nil {
		return Result{Quit: true}, true
	}
	if err := t.Claim(); err != nil {
		return Result{Quit: true}, true
	}
	redraw(t, st, styles, rOpts)
	return Result{}, false
}

func redraw(t *term.Terminal, st *State, styles render.Styles, rOpts render.RenderOptions) {
	t.Clear()
	if st.PopupOpen {
		w, h := t.Dims()
		fmt.Fprint(t, Popup(st.PopupBody, w, h))
		return
	}
	for _, e := range st.Visible() {
		fmt.Fprintln(t, e.Format(styles, rOpts))
	}
}
