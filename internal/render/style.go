// Package render converts a model.Matches tree into the ordered sequence
// of Entry values described in spec.md section 4.3, walking the arena in
// pre-order and constructing tree-drawing prefixes as it goes.
//
// Grounded on the teacher's internal/format.Tree (connector selection,
// recursive prefix-building), generalised from a names-only document
// tree to the arena graph, and restyled with lipgloss in place of the
// teacher's raw ANSI escapes (internal/diff.Colourise) since the match/
// path/line-number styling surface here is much larger than a two-colour
// diff.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/tgrep/internal/options"
)

// Styles bundles the lipgloss styles used while formatting entries. A
// zero-value Styles (as built by NoColor) renders plain text.
type Styles struct {
	Match lipgloss.Style
	Path  lipgloss.Style
	Line  lipgloss.Style
	Link  lipgloss.Style
}

// NewStyles builds the style set for opts, honoring --no-color and
// --no-bold.
func NewStyles(opts options.Options) Styles {
	if opts.NoColor {
		return Styles{}
	}
	match := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	path := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	line := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	link := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Italic(true)
	if !opts.NoBold {
		match = match.Bold(true)
		path = path.Bold(true)
	}
	return Styles{Match: match, Path: path, Line: line, Link: link}
}

// charSet is the glyph table for one CharStyle, indexed the same way as
// model.PrefixKind's constants.
type charSet struct {
	withNext string
	noNext   string
	vert     string
	spacer   string
}

var charSets = map[options.CharStyle]charSet{
	options.CharStyleAscii:   {"|-- ", "`-- ", "|   ", "    "},
	options.CharStyleSingle:  {"├── ", "└── ", "│   ", "    "},
	options.CharStyleDouble:  {"╠══ ", "╚══ ", "║   ", "    "},
	options.CharStyleHeavy:   {"┣━━ ", "┗━━ ", "┃   ", "    "},
	options.CharStyleRounded: {"├── ", "╰── ", "│   ", "    "},
	options.CharStyleNone:    {"", "", "", ""},
}

func glyphsFor(style options.CharStyle) charSet {
	if cs, ok := charSets[style]; ok {
		return cs
	}
	return charSets[options.CharStyleSingle]
}
