package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/mattn/go-runewidth"
)

var (
	errLongBranchNotOpenable = errors.New("render: long-branch entries cannot be opened directly")
	errOverviewNotOpenable   = errors.New("render: the overview entry cannot be opened")
)

// prefixString expands a model.Prefix into its drawing characters using
// cs, concatenating one glyph per component in order.
func prefixString(p model.Prefix, cs charSet) string {
	var b strings.Builder
	for _, k := range p {
		switch k {
		case model.MatchWithNext:
			b.WriteString(cs.withNext)
		case model.MatchNoNext:
			b.WriteString(cs.noNext)
		case model.SpacerVert:
			b.WriteString(cs.vert)
		default:
			b.WriteString(cs.spacer)
		}
	}
	return b.String()
}

// Format renders a path entry as "<prefix><name>/[ -> link]" for a
// directory, or "<prefix><name>[ -> link]" for a file, matching the
// teacher's internal/format.Tree connector placement generalised with
// lipgloss styling and an optional link suffix.
func (e PathEntry) Format(s Styles, opts RenderOptions) string {
	prefix := prefixString(e.Prefix, opts.charSet)
	name := e.Name
	if opts.testMode {
		name = "[ps]" + name + "[pe]"
	} else {
		name = s.Path.Render(name)
	}
	suffix := ""
	if e.IsDir {
		suffix = "/"
	}
	if e.LinkTarget != "" {
		link := " -> " + e.LinkTarget
		if !opts.testMode {
			link = s.Link.Render(link)
		}
		suffix += link
	}
	return prefix + name + suffix
}

// Format renders a matched or context line: the prefix, an optional
// 1-based line number, and the content with match segments styled (or
// test-mode bracketed) and the rest left plain, per spec.md section 4.3.
func (e LineEntry) Format(s Styles, opts RenderOptions) string {
	prefix := prefixString(e.Prefix, opts.charSet)

	content := e.Content
	matches := e.Matches
	if opts.trim {
		trimmed := strings.TrimLeft(content, " \t")
		cut := len(content) - len(trimmed)
		if cut > 0 {
			content = trimmed
			matches = shiftMatches(matches, -cut)
		}
	}

	capAt := opts.maxLength
	if opts.selectWidth > 0 {
		// Box-drawing glyphs (single/double/heavy/rounded char styles)
		// are multi-byte but single-column; len(prefix) would overcount
		// bytes and under-count the columns actually left for content.
		visible := runewidth.StringWidth(prefix)
		w := opts.selectWidth - visible
		if w > 0 && (capAt == 0 || w < capAt) {
			capAt = w
		}
	}
	if capAt > 0 && len(content) > capAt {
		content = content[:capAt]
		matches = clipMatches(matches, capAt)
	}

	lineNo := ""
	if opts.lineNumber {
		lineNo = strconv.Itoa(e.LineNumber) + ":"
	}

	return prefix + lineNo + renderSegments(content, matches, s, opts.testMode)
}

// Format renders a long-branch chunk: the prefix followed by each
// file's base name, separated by ", " with no per-file prefix, per
// spec.md section 4.3's long-branch mode.
func (e LongBranchEntry) Format(s Styles, opts RenderOptions) string {
	prefix := prefixString(e.Prefix, opts.charSet)
	names := make([]string, len(e.Names))
	for i, n := range e.Names {
		if opts.testMode {
			names[i] = "[ps]" + n + "[pe]"
		} else {
			names[i] = s.Path.Render(n)
		}
	}
	return prefix + strings.Join(names, ", ")
}

// Format renders the trailing totals row, per spec.md section 4.3's
// overview entry.
func (e OverviewEntry) Format(_ Styles, _ RenderOptions) string {
	t := e.Totals
	return fmt.Sprintf("%d directories, %d files, %d lines, %d matches", t.Directories, t.Files, t.Lines, t.Matches)
}

// renderSegments interleaves plain text with styled match segments,
// walking matches in order (they are already disjoint and sorted by
// EliminateOverlaps).
func renderSegments(content string, matches []model.Match, s Styles, testMode bool) string {
	var b strings.Builder
	pos := 0
	for _, m := range matches {
		start, end := m.Start, m.End
		if start < pos {
			start = pos
		}
		if end > len(content) {
			end = len(content)
		}
		if start > len(content) || start >= end {
			continue
		}
		b.WriteString(content[pos:start])
		seg := content[start:end]
		if testMode {
			b.WriteString(fmt.Sprintf("[m%ds]%s[m%de]", m.PatternID, seg, m.PatternID))
		} else {
			b.WriteString(s.Match.Render(seg))
		}
		pos = end
	}
	if pos < len(content) {
		b.WriteString(content[pos:])
	}
	return b.String()
}

func shiftMatches(ms []model.Match, delta int) []model.Match {
	out := make([]model.Match, len(ms))
	for i, m := range ms {
		m.Start += delta
		m.End += delta
		if m.Start < 0 {
			m.Start = 0
		}
		if m.End < 0 {
			m.End = 0
		}
		out[i] = m
	}
	return out
}

func clipMatches(ms []model.Match, capAt int) []model.Match {
	var out []model.Match
	for _, m := range ms {
		if m.Start >= capAt {
			continue
		}
		if m.End > capAt {
			m.End = capAt
		}
		out = append(out, m)
	}
	return out
}

// baseName is a small readability alias for filepath.Base used by the
// tree builder when constructing PathEntry/LongBranchEntry names.
func baseName(path string) string { return filepath.Base(path) }
