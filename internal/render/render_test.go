package render

import (
	"strings"
	"testing"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeepChainOneChildPerDirectory(t *testing.T) {
	// Mirrors spec.md scenario 1's fixture shape: a single-child chain
	// plus a top-level file, one match each.
	arena := model.Arena{
		{Path: "/root", Children: []int{1}, Files: []model.File{
			{Path: "/root/top_file", Lines: []model.Line{{Content: "nice", Number: 1, Matches: []model.Match{{Start: 0, End: 4}}}}},
		}},
		{Path: "/root/first", Children: []int{2}},
		{Path: "/root/first/second", Files: []model.File{
			{Path: "/root/first/second/hit", Lines: []model.Line{{Content: "nice", Number: 1, Matches: []model.Match{{Start: 0, End: 4}}}}},
		}},
	}
	entries := Build(model.Matches{Dirs: arena}, options.Options{})

	var paths, lines int
	for _, e := range entries {
		switch e.(type) {
		case PathEntry:
			paths++
		case LineEntry:
			lines++
		}
	}
	// root + first + second + top_file + hit = 5 path entries.
	assert.Equal(t, 5, paths)
	assert.Equal(t, 2, lines)
}

func TestBuildRootPathEntryOmittedWhenEmpty(t *testing.T) {
	arena := model.Arena{{Path: "/root"}}
	entries := Build(model.Matches{Dirs: arena}, options.Options{})
	assert.Empty(t, entries)
}

func TestBuildLineNumbersPresent(t *testing.T) {
	arena := model.Arena{
		{Path: "/root", Files: []model.File{
			{Path: "/root/f", Lines: []model.Line{
				{Content: "Alice one", Number: 1, Matches: []model.Match{{Start: 0, End: 5}}},
				{Content: "Alice two", Number: 2, Matches: []model.Match{{Start: 0, End: 5}}},
			}},
		}},
	}
	entries := Build(model.Matches{Dirs: arena}, options.Options{LineNumber: true})
	styles := StylesFor(options.Options{NoColor: true})
	opts := OptsFor(options.Options{LineNumber: true, NoColor: true, CharStyle: options.CharStyleAscii}, 0)

	var got []string
	for _, e := range entries {
		if le, ok := e.(LineEntry); ok {
			got = append(got, le.Format(styles, opts))
		}
	}
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "1:")
	assert.Contains(t, got[1], "2:")
}

func TestBuildMaxDepthFixtureOnlyValidFileShown(t *testing.T) {
	arena := model.Arena{
		{Path: "/root", Children: []int{1}, Files: []model.File{
			{Path: "/root/valid_file", Lines: []model.Line{{Content: "should show", Number: 1, Matches: []model.Match{{Start: 0, End: 1}}}}},
		}},
		{Path: "/root/one"},
	}
	entries := Build(model.Matches{Dirs: arena}, options.Options{})
	for _, e := range entries {
		if pe, ok := e.(PathEntry); ok {
			assert.NotEqual(t, "one", pe.Name)
		}
	}
}

func TestLongBranchChunking(t *testing.T) {
	files := make([]model.File, 12)
	for i := range files {
		files[i] = model.File{Path: "/root/f"}
	}
	arena := model.Arena{{Path: "/root", Files: files}}
	entries := Build(model.Matches{Dirs: arena}, options.Options{LongBranch: true, FilesOnly: true, LongBranchEach: 5})

	var chunks int
	for _, e := range entries {
		if _, ok := e.(LongBranchEntry); ok {
			chunks++
		}
	}
	assert.Equal(t, 3, chunks) // 5 + 5 + 2
}

func TestOverviewEntryTotals(t *testing.T) {
	arena := model.Arena{
		{Path: "/root", Files: []model.File{
			{Path: "/root/f", Lines: []model.Line{{Content: "x", Number: 1, Matches: []model.Match{{Start: 0, End: 1}}}}},
		}},
	}
	entries := Build(model.Matches{Dirs: arena}, options.Options{Overview: true})
	last := entries[len(entries)-1]
	ov, ok := last.(OverviewEntry)
	require.True(t, ok)
	assert.Equal(t, 1, ov.Totals.Files)
	assert.Equal(t, 1, ov.Totals.Lines)
	assert.Equal(t, 1, ov.Totals.Matches)
}

func TestOverlapCollapseScenarioRendersSingleHighlight(t *testing.T) {
	matches := model.EliminateOverlaps([]model.Match{{Start: 0, End: 4}, {Start: 0, End: 4}})
	entries := Build(model.Matches{Dirs: model.Arena{
		{Path: "/root", Files: []model.File{
			{Path: "/root/f", Lines: []model.Line{{Content: "aabb", Number: 1, Matches: matches}}},
		}},
	}}, options.Options{TestMode: true})

	styles := StylesFor(options.Options{NoColor: true})
	opts := OptsFor(options.Options{TestMode: true, CharStyle: options.CharStyleAscii}, 0)
	for _, e := range entries {
		if le, ok := e.(LineEntry); ok {
			out := le.Format(styles, opts)
			assert.Equal(t, 1, strOccurrences(out, "[m0s]"))
		}
	}
}

func TestLineEntrySelectWidthCountsDisplayColumnsNotBytes(t *testing.T) {
	// "┗━━ " is one prefix column of the heavy char style: 4 display
	// columns but, since each box-drawing rune is 3 bytes in UTF-8, 10
	// bytes. A select-width cap that counted bytes would leave only
	// selectWidth-10 columns for content instead of the true
	// selectWidth-4, truncating content far earlier than the terminal
	// actually requires.
	e := LineEntry{
		Prefix:  model.Prefix{model.MatchNoNext},
		Content: "0123456789abcdefghij",
	}
	opts := OptsFor(options.Options{CharStyle: options.CharStyleHeavy}, 20)
	styles := StylesFor(options.Options{NoColor: true})

	out := e.Format(styles, opts)

	prefix := "┗━━ "
	require.True(t, strings.HasPrefix(out, prefix))
	content := strings.TrimPrefix(out, prefix)
	// Available columns = selectWidth(20) - display width of prefix(4) = 16.
	assert.Equal(t, "0123456789abcdef", content)
}

func strOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
