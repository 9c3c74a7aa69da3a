package selectui

import (
	"testing"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntry is a minimal render.Entry for exercising navigation without
// pulling in the full tree-building pipeline.
type fakeEntry struct {
	depth  int
	isPath bool
}

func (f fakeEntry) Format(render.Styles, render.RenderOptions) string { return "" }
func (f fakeEntry) Depth() int                                        { return f.depth }
func (f fakeEntry) IsPath() bool                                      { return f.isPath }
func (f fakeEntry) OpenInfo() (render.OpenInfo, error)                { return render.OpenInfo{}, nil }

func fixture() []render.Entry {
	// root(0,path) / fileA(1,path) / line(2) / line(3) / fileB(1,path) / line(2)
	return []render.Entry{
		fakeEntry{depth: 0, isPath: true},
		fakeEntry{depth: 1, isPath: true},
		fakeEntry{depth: 2, isPath: false},
		fakeEntry{depth: 2, isPath: false},
		fakeEntry{depth: 1, isPath: true},
		fakeEntry{depth: 2, isPath: false},
	}
}

func TestNewWindowClampedToHeight(t *testing.T) {
	st := New(fixture(), 80, 3)
	assert.Equal(t, 0, st.WindowFirst)
	assert.Equal(t, 2, st.WindowLast)
}

func TestMoveSmallAdvancesSelection(t *testing.T) {
	st := New(fixture(), 80, 10)
	st.MoveSmall(true)
	assert.Equal(t, 1, st.SelectedID)
	st.MoveSmall(false)
	assert.Equal(t, 0, st.SelectedID)
}

func TestMoveClampsAtEnds(t *testing.T) {
	st := New(fixture(), 80, 10)
	st.MoveBy(-5)
	assert.Equal(t, 0, st.SelectedID)
	st.Last()
	assert.Equal(t, len(fixture())-1, st.SelectedID)
	st.MoveBy(5)
	assert.Equal(t, len(fixture())-1, st.SelectedID)
}

func TestNextPrevPathEntry(t *testing.T) {
	st := New(fixture(), 80, 10)
	st.NextPathEntry()
	require.Equal(t, 1, st.SelectedID)
	st.NextPathEntry()
	require.Equal(t, 4, st.SelectedID)
	st.PrevPathEntry()
	assert.Equal(t, 1, st.SelectedID)
}

func TestSameDepthNavigation(t *testing.T) {
	st := New(fixture(), 80, 10)
	st.setSelected(1) // fileA, depth 1, is path
	st.NextSameDepth()
	assert.Equal(t, 4, st.SelectedID) // fileB, depth 1
	st.PrevSameDepth()
	assert.Equal(t, 1, st.SelectedID)
}

func TestScrollDisciplineShiftsWindowNearBottom(t *testing.T) {
	entries := make([]render.Entry, 20)
	for i := range entries {
		entries[i] = fakeEntry{depth: 0, isPath: true}
	}
	st := New(entries, 80, 10) // scrollOffset = 2
	st.setSelected(8)
	assert.LessOrEqual(t, st.WindowLast-st.SelectedID, 1)
	assert.True(t, st.WindowLast >= st.SelectedID)
}

func TestClickRowSelectsVisibleEntry(t *testing.T) {
	st := New(fixture(), 80, 10)
	st.ClickRow(2)
	assert.Equal(t, 2, st.SelectedID)
}

func TestCycleCursorOrderMiddleTopBottom(t *testing.T) {
	entries := make([]render.Entry, 20)
	for i := range entries {
		entries[i] = fakeEntry{depth: 0, isPath: true}
	}
	st := New(entries, 80, 10)
	st.setSelected(5)

	pos := CursorMiddle
	pos = st.CycleCursor(pos)
	assert.Equal(t, CursorTop, pos)
	assert.Equal(t, st.WindowFirst, st.SelectedID)

	pos = st.CycleCursor(pos)
	assert.Equal(t, CursorBottom, pos)
	assert.Equal(t, st.WindowLast, st.SelectedID)
}

func TestModelPrefixDepthUnaffectedByState(t *testing.T) {
	// Sanity check that model.Prefix.Depth, used transitively by real
	// entries' Depth(), behaves as navigation assumes.
	p := model.Prefix{model.MatchWithNext, model.SpacerVert}
	assert.Equal(t, 2, p.Depth())
}
