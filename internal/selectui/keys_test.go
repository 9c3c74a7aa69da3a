package selectui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEventPlainRune(t *testing.T) {
	r := NewReader(strings.NewReader("j"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyRune, ev.Kind)
	assert.Equal(t, 'j', ev.Rune)
}

func TestReadEventArrowKeys(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[A\x1b[B\x1b[C\x1b[D"))
	var kinds []KeyKind
	for i := 0; i < 4; i++ {
		ev, err := r.ReadEvent()
		require.NoError(t, err)
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []KeyKind{KeyUp, KeyDown, KeyRight, KeyLeft}, kinds)
}

func TestReadEventPageKeys(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[5~\x1b[6~"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyPgUp, ev.Kind)
	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyPgDown, ev.Kind)
}

func TestReadEventCtrlCAndEnter(t *testing.T) {
	r := NewReader(strings.NewReader("\x03\r"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyCtrlC, ev.Kind)
	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyEnter, ev.Kind)
}

func TestReadEventSGRMouseWheelAndClick(t *testing.T) {
	r := NewReader(strings.NewReader("\x1b[<64;10;5M\x1b[<0;3;2M\x1b[<0;3;2m"))
	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, KeyMouse, ev.Kind)
	assert.Equal(t, MouseWheelUp, ev.Mouse)
	assert.Equal(t, 9, ev.Col)
	assert.Equal(t, 4, ev.Row)

	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, MouseLeftDown, ev.Mouse)

	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, MouseLeftUp, ev.Mouse)
}
