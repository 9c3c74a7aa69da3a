// Package selectui implements the full-screen interactive selection
// terminal spec.md section 4.4 describes: a scrolling list of rendered
// entries, rich keyboard/mouse navigation, a help popup, and an on-commit
// hand-off to either a selection-file or an editor.
//
// Grounded on internal/term's claim/give terminal primitive (built for
// this purpose, generalised from the teacher's internal/progress TTY
// idiom) and, for the one-shot rendered views it pops up (help, preview),
// on glamour/chroma, the two rendering libraries the corpus carries for
// exactly this job but that the teacher's document-store command set
// never exercised directly.
package selectui

import (
	"github.com/jpl-au/tgrep/internal/render"
)

// State is the scroll-window model spec.md section 4.4 describes:
// selectedID is the entry index under the cursor, cursorY is its row
// within the viewport, and window.first/window.last are the entry
// indices currently visible at the top and bottom rows.
type State struct {
	Entries []render.Entry

	SelectedID int
	CursorY    int

	WindowFirst int
	WindowLast  int

	Width, Height int

	PopupOpen bool
	PopupBody string
}

// scrollOffset is the keep-out margin ("big_jump") spec.md section 4.4
// calls height/5.
func (s *State) scrollOffset() int {
	o := s.Height / 5
	if o < 1 {
		o = 1
	}
	return o
}

// New builds the initial state for entries against a viewport of
// width x height, with the window anchored at the top.
func New(entries []render.Entry, width, height int) *State {
	s := &State{Entries: entries, Width: width, Height: height}
	s.WindowFirst = 0
	s.WindowLast = s.lastVisibleIndex(0)
	return s
}

func (s *State) lastVisibleIndex(first int) int {
	last := first + s.Height - 1
	if last > len(s.Entries)-1 {
		last = len(s.Entries) - 1
	}
	if last < first {
		last = first
	}
	return last
}

// Resize updates the viewport dimensions after a terminal resize,
// recentring the window on the current selection per spec.md section
// 4.4's resize rule.
func (s *State) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.recenter()
}

func (s *State) recenter() {
	half := s.Height / 2
	first := s.SelectedID - half
	if first < 0 {
		first = 0
	}
	maxFirst := len(s.Entries) - s.Height
	if maxFirst < 0 {
		maxFirst = 0
	}
	if first > maxFirst {
		first = maxFirst
	}
	s.WindowFirst = first
	s.WindowLast = s.lastVisibleIndex(first)
	s.CursorY = s.SelectedID - s.WindowFirst
}

// setSelected moves the cursor to id, clamped to the entry list, then
// applies the keep-out scrolling discipline.
func (s *State) setSelected(id int) {
	if len(s.Entries) == 0 {
		return
	}
	if id < 0 {
		id = 0
	}
	if id > len(s.Entries)-1 {
		id = len(s.Entries) - 1
	}
	s.SelectedID = id
	s.applyScrollDiscipline()
}

// applyScrollDiscipline keeps selectedID within [window.first,
// window.last] and, when it approaches within scrollOffset of an edge
// that still has more entries beyond it, shifts the window by the
// minimal amount needed rather than jumping straight to centred,
// matching spec.md's "repaint only the newly exposed row" intent.
func (s *State) applyScrollDiscipline() {
	offset := s.scrollOffset()

	if s.SelectedID < s.WindowFirst {
		s.WindowFirst = s.SelectedID
		s.WindowLast = s.lastVisibleIndex(s.WindowFirst)
	}
	if s.SelectedID > s.WindowLast {
		s.WindowLast = s.SelectedID
		s.WindowFirst = s.WindowLast - s.Height + 1
		if s.WindowFirst < 0 {
			s.WindowFirst = 0
		}
	}

	// Keep-out zone at the bottom: if more entries remain below
	// window.last and the selection is within offset rows of the
	// bottom, shift the window down by one entry.
	for s.WindowLast < len(s.Entries)-1 && s.WindowLast-s.SelectedID < offset {
		s.WindowFirst++
		s.WindowLast++
	}
	// Keep-out zone at the top: symmetric shift upward.
	for s.WindowFirst > 0 && s.SelectedID-s.WindowFirst < offset {
		s.WindowFirst--
		s.WindowLast--
	}

	s.CursorY = s.SelectedID - s.WindowFirst
}

// Visible returns the entries currently inside the scroll window.
func (s *State) Visible() []render.Entry {
	if len(s.Entries) == 0 {
		return nil
	}
	return s.Entries[s.WindowFirst : s.WindowLast+1]
}

// Selected returns the entry currently under the cursor.
func (s *State) Selected() render.Entry {
	return s.Entries[s.SelectedID]
}
