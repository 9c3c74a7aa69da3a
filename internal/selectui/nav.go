package selectui

// smallJump is the single-step movement distance bound to j/n/down and
// k/p/up.
const smallJump = 1

// MoveBy shifts the selection by delta entries (negative moves up),
// clamped to the entry list.
func (s *State) MoveBy(delta int) {
	s.setSelected(s.SelectedID + delta)
}

// MoveSmall implements j/n/down (+1) and k/p/up (-1).
func (s *State) MoveSmall(down bool) {
	if down {
		s.MoveBy(smallJump)
	} else {
		s.MoveBy(-smallJump)
	}
}

// MoveBig implements J/N (+scrollOffset) and K/P (-scrollOffset).
func (s *State) MoveBig(down bool) {
	d := s.scrollOffset()
	if down {
		s.MoveBy(d)
	} else {
		s.MoveBy(-d)
	}
}

// PageDown/PageUp implement f/PgDn and b/PgUp: move a full viewport.
func (s *State) PageDown() { s.MoveBy(s.Height) }
func (s *State) PageUp()   { s.MoveBy(-s.Height) }

// First/Last implement g/</Home and G/>/End.
func (s *State) First() { s.setSelected(0) }
func (s *State) Last()  { s.setSelected(len(s.Entries) - 1) }

// NextPathEntry/PrevPathEntry implement }/] and {/[: the next or
// previous entry for which IsPath() is true.
func (s *State) NextPathEntry() {
	for i := s.SelectedID + 1; i < len(s.Entries); i++ {
		if s.Entries[i].IsPath() {
			s.setSelected(i)
			return
		}
	}
}

func (s *State) PrevPathEntry() {
	for i := s.SelectedID - 1; i >= 0; i-- {
		if s.Entries[i].IsPath() {
			s.setSelected(i)
			return
		}
	}
}

// NextSameDepth/PrevSameDepth implement ),d and (,u: the next/previous
// path entry at the same depth as the current entry, per spec.md
// section 4.4's same-depth navigation rule.
func (s *State) NextSameDepth() {
	depth := s.Entries[s.SelectedID].Depth()
	for i := s.SelectedID + 1; i < len(s.Entries); i++ {
		if s.Entries[i].IsPath() && s.Entries[i].Depth() == depth {
			s.setSelected(i)
			return
		}
	}
}

func (s *State) PrevSameDepth() {
	depth := s.Entries[s.SelectedID].Depth()
	for i := s.SelectedID - 1; i >= 0; i-- {
		if s.Entries[i].IsPath() && s.Entries[i].Depth() == depth {
			s.setSelected(i)
			return
		}
	}
}

// CursorPosition cycles Middle -> Top -> Bottom -> Middle, moving the
// selection to the entry at that row of the current window without
// changing the window itself, implementing z's cycling behaviour.
type CursorPosition int

const (
	CursorMiddle CursorPosition = iota
	CursorTop
	CursorBottom
)

// CycleCursor advances prev to the next position in the Middle -> Top
// -> Bottom -> Middle cycle, moves the selection there, and returns the
// new position so the caller can remember it for the next press.
func (s *State) CycleCursor(prev CursorPosition) CursorPosition {
	next := (prev + 1) % 3
	var target int
	switch next {
	case CursorTop:
		target = s.WindowFirst
	case CursorBottom:
		target = s.WindowLast
	default:
		target = (s.WindowFirst + s.WindowLast) / 2
	}
	if len(s.Entries) == 0 {
		return next
	}
	s.SelectedID = target
	s.CursorY = target - s.WindowFirst
	return next
}

// ClickRow implements left-mouse-down-then-up on the same row: row is
// 0-based within the viewport.
func (s *State) ClickRow(row int) {
	id := s.WindowFirst + row
	if id >= s.WindowFirst && id <= s.WindowLast {
		s.setSelected(id)
	}
}

// ScrollBy moves the window by delta entries without necessarily
// moving the selection off-window, implementing the mouse wheel. The
// scroll discipline still applies because setSelected re-clamps.
func (s *State) ScrollBy(delta int) {
	s.MoveBy(delta)
}
