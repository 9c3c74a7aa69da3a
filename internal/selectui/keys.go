package selectui

import (
	"bufio"
	"io"
)

// KeyKind names a decoded input event, collapsing the many raw byte
// sequences a terminal can send into the action vocabulary spec.md
// section 4.4's key-binding table uses.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyCtrlC
	KeyCtrlZ
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyMouse
)

// MouseKind distinguishes the mouse events the selector honors.
type MouseKind int

const (
	MouseNone MouseKind = iota
	MouseWheelUp
	MouseWheelDown
	MouseLeftDown
	MouseLeftUp
)

// Event is one decoded input: either a key press or a mouse action.
type Event struct {
	Kind  KeyKind
	Rune  rune
	Mouse MouseKind
	Row   int
	Col   int
}

// Reader decodes a raw byte stream (as delivered by a terminal in raw
// mode) into Events, recognising the CSI escape sequences for arrow
// keys, paging, and SGR mouse reporting (\x1b[<b;x;yM / m).
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps src (typically os.Stdin once the terminal is in raw
// mode) for event decoding.
func NewReader(src io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(src)}
}

// ReadEvent blocks for exactly one input event, the selection loop's
// sole suspension point per spec.md section 5.
func (r *Reader) ReadEvent() (Event, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	switch b {
	case 0x03:
		return Event{Kind: KeyCtrlC}, nil
	case 0x1a:
		return Event{Kind: KeyCtrlZ}, nil
	case '\r', '\n':
		return Event{Kind: KeyEnter}, nil
	case 0x1b:
		return r.readEscape()
	}
	if b < 0x80 {
		return Event{Kind: KeyRune, Rune: rune(b)}, nil
	}
	// Multi-byte UTF-8 rune: let the bufio.Reader's rune decoder
	// handle the continuation bytes.
	if err := r.r.UnreadByte(); err != nil {
		return Event{}, err
	}
	ru, _, err := r.r.ReadRune()
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: KeyRune, Rune: ru}, nil
}

// readEscape decodes the body of an ESC-prefixed sequence: a bare ESC
// (no more bytes pending), a CSI arrow/page/home/end code, or an SGR
// mouse report.
func (r *Reader) readEscape() (Event, error) {
	if r.r.Buffered() == 0 {
		return Event{Kind: KeyEscape}, nil
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return Event{}, err
	}
	if b != '[' {
		return Event{Kind: KeyEscape}, nil
	}

	first, err := r.r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	if first == '<' {
		return r.readSGRMouse()
	}

	// Read any intervening digits (e.g. "5~" for PgUp).
	var digits []byte
	cur := first
	for cur >= '0' && cur <= '9' {
		digits = append(digits, cur)
		cur, err = r.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
	}

	switch {
	case len(digits) == 0:
		switch cur {
		case 'A':
			return Event{Kind: KeyUp}, nil
		case 'B':
			return Event{Kind: KeyDown}, nil
		case 'C':
			return Event{Kind: KeyRight}, nil
		case 'D':
			return Event{Kind: KeyLeft}, nil
		case 'H':
			return Event{Kind: KeyHome}, nil
		case 'F':
			return Event{Kind: KeyEnd}, nil
		}
	case cur == '~':
		switch string(digits) {
		case "5":
			return Event{Kind: KeyPgUp}, nil
		case "6":
			return Event{Kind: KeyPgDown}, nil
		case "1", "7":
			return Event{Kind: KeyHome}, nil
		case "4", "8":
			return Event{Kind: KeyEnd}, nil
		}
	}
	return Event{Kind: KeyNone}, nil
}

// readSGRMouse parses "<b;x;yM" / "<b;x;ym" mouse reports: button code
// b, 1-based column x, 1-based row y, terminated by M (press) or m
// (release).
func (r *Reader) readSGRMouse() (Event, error) {
	var fields [3]int
	fi := 0
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		switch {
		case b >= '0' && b <= '9':
			fields[fi] = fields[fi]*10 + int(b-'0')
		case b == ';':
			fi++
			if fi > 2 {
				return Event{Kind: KeyNone}, nil
			}
		case b == 'M' || b == 'm':
			btn, col, row := fields[0], fields[1], fields[2]
			ev := Event{Kind: KeyMouse, Col: col - 1, Row: row - 1}
			switch {
			case btn&0x40 != 0 && btn&0x01 != 0:
				ev.Mouse = MouseWheelDown
			case btn&0x40 != 0:
				ev.Mouse = MouseWheelUp
			case b == 'M':
				ev.Mouse = MouseLeftDown
			default:
				ev.Mouse = MouseLeftUp
			}
			return ev, nil
		default:
			return Event{Kind: KeyNone}, nil
		}
	}
}
