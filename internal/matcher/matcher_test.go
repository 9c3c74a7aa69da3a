package matcher

import (
	"testing"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidRegex(t *testing.T) {
	_, err := New([]string{"[a-"}, Options{})
	require.Error(t, err)
	var invalid *InvalidRegexError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "[a-", invalid.Pattern)
}

func TestHasMatchAndFind(t *testing.T) {
	m, err := New([]string{"nice", "hidden"}, Options{})
	require.NoError(t, err)

	line := []byte("this line is nice and hidden")
	require.True(t, m.HasMatch(line))

	matches := m.Find(line)
	require.Len(t, matches, 2)
}

func TestEliminateOverlapsCollapsesDuplicates(t *testing.T) {
	// patterns `[ab]+` and `a+b+` on "aabb" both match (0,4) - spec.md
	// scenario 5.
	ms := []model.Match{{PatternID: 0, Start: 0, End: 4}, {PatternID: 1, Start: 0, End: 4}}
	out := model.EliminateOverlaps(ms)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Start)
	assert.Equal(t, 4, out[0].End)
	assert.Equal(t, 4, out[1].Start)
	assert.Equal(t, 4, out[1].End)

	// idempotent
	out2 := model.EliminateOverlaps(append([]model.Match{}, out...))
	assert.Equal(t, out, out2)
}

func TestEliminateOverlapsDisjointInvariant(t *testing.T) {
	ms := []model.Match{
		{Start: 5, End: 8},
		{Start: 0, End: 6},
		{Start: 7, End: 10},
	}
	out := model.EliminateOverlaps(ms)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].End, out[i].Start)
		assert.GreaterOrEqual(t, out[i].Start, out[i-1].Start)
	}
}

func TestDecodeLineReplacesInvalidUTF8(t *testing.T) {
	raw := []byte{'o', 'k', 0xff, 'x'}
	decoded := DecodeLine(raw)
	assert.Contains(t, decoded, "�")
	assert.Contains(t, decoded, "ok")
	assert.Contains(t, decoded, "x")
}

func TestComputeContextOffsets(t *testing.T) {
	lines := []model.Line{
		{Number: 1},
		{Number: 2},
		{Number: 3, Matches: []model.Match{{Start: 0, End: 1}}},
		{Number: 4},
		{Number: 5},
		{Number: 6, Matches: []model.Match{{Start: 0, End: 1}}},
		{Number: 7},
	}
	matcher := []model.Line(lines)
	ComputeContextOffsets(matcher)

	assert.Equal(t, -2, lines[0].ContextOffset)
	assert.Equal(t, -1, lines[1].ContextOffset)
	assert.Equal(t, 0, lines[2].ContextOffset)
	assert.False(t, lines[2].IsContext)
	assert.Equal(t, 1, lines[3].ContextOffset)
	assert.Equal(t, -1, lines[4].ContextOffset)
	assert.Equal(t, 0, lines[5].ContextOffset)
	assert.Equal(t, 1, lines[6].ContextOffset)
}
