package render

import (
	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
)

// Build walks matches in pre-order and returns the flat ordered sequence
// of Entry values spec.md section 4.3 describes, honoring opts' display
// knobs (long-branch, overview, trim, line numbers, char style).
func Build(matches model.Matches, opts options.Options) []Entry {
	var entries []Entry

	if matches.File != nil {
		entries = appendFileEntries(entries, matches.File, model.Prefix{}, model.Prefix{}, opts)
	} else if len(matches.Dirs) > 0 {
		entries = buildDir(entries, matches.Dirs, 0, model.Prefix{}, model.Prefix{}, opts)
	}

	if opts.Overview {
		entries = append(entries, OverviewEntry{Totals: model.Summarise(matches)})
	}
	return entries
}

// buildDir emits dirIdx's own Path entry (an empty directory with no
// children and no files emits nothing and is not recursed into), then
// recurses into its children, then its files, constructing the two
// running prefixes per spec.md section 4.3's rule. The root directory
// (index 0) participates identically, with an empty starting prefix, so
// a non-empty root gets its own Path entry too.
func buildDir(entries []Entry, arena model.Arena, dirIdx int, curPrefix, childPrefixBase model.Prefix, opts options.Options) []Entry {
	d := &arena[dirIdx]
	n := len(d.Children)
	m := len(d.Files)
	if n == 0 && m == 0 {
		return entries
	}

	entries = append(entries, PathEntry{
		Prefix:     curPrefix,
		Name:       baseName(d.Path),
		FullPath:   d.Path,
		LinkTarget: d.LinkTarget,
		ChildCount: n,
		FileCount:  m,
		IsDir:      true,
	})

	for i, childIdx := range d.Children {
		moreAfter := i != n-1 || m > 0
		cur, next := childPrefixes(childPrefixBase, moreAfter)
		entries = buildDir(entries, arena, childIdx, cur, next, opts)
	}

	if opts.LongBranch && opts.FilesOnly {
		entries = appendLongBranch(entries, d.Files, childPrefixBase, opts)
		return entries
	}

	for j := range d.Files {
		moreAfter := j != m-1
		cur, next := childPrefixes(childPrefixBase, moreAfter)
		entries = appendFileEntries(entries, &d.Files[j], cur, next, opts)
	}

	return entries
}

// childPrefixes extends base with the connector for "another item
// follows" (MatchWithNext/SpacerVert) or "this is the last item"
// (MatchNoNext/Spacer), per spec.md section 4.3's sibling rule.
func childPrefixes(base model.Prefix, moreAfter bool) (cur, next model.Prefix) {
	if moreAfter {
		return extend(base, model.MatchWithNext), extend(base, model.SpacerVert)
	}
	return extend(base, model.MatchNoNext), extend(base, model.Spacer)
}

func extend(base model.Prefix, k model.PrefixKind) model.Prefix {
	out := make(model.Prefix, len(base), len(base)+1)
	copy(out, base)
	return append(out, k)
}

// appendFileEntries emits a file's own Path entry at filePrefix, then one
// Line entry per matched/context line, each one level deeper than the
// file and individually decorated with MatchWithNext/MatchNoNext
// depending on whether a following line remains - grounded on the
// original implementation's File::to_lines (src/writer.rs), which
// nests each line's connector rather than sharing one fixed prefix for
// the whole file.
func appendFileEntries(entries []Entry, f *model.File, filePrefix, lineBase model.Prefix, opts options.Options) []Entry {
	entries = append(entries, PathEntry{
		Prefix:     filePrefix,
		Name:       baseName(f.Path),
		FullPath:   f.Path,
		LinkTarget: f.LinkTarget,
	})
	if opts.FilesOnly {
		return entries
	}
	n := len(f.Lines)
	for i, l := range f.Lines {
		linePrefix, _ := childPrefixes(lineBase, i != n-1)
		entries = append(entries, LineEntry{
			Prefix:     linePrefix,
			Content:    l.Content,
			FilePath:   f.Path,
			Matches:    l.Matches,
			LineNumber: l.Number,
			IsContext:  l.IsContext,
		})
	}
	return entries
}

// appendLongBranch chunks files into groups of opts.ResolvedLongBranchEach,
// emitting one LongBranchEntry per chunk with MatchWithNext for every
// chunk but the last, per spec.md section 4.3.
func appendLongBranch(entries []Entry, files []model.File, childPrefixBase model.Prefix, opts options.Options) []Entry {
	each := opts.ResolvedLongBranchEach()
	var chunks [][]model.File
	for i := 0; i < len(files); i += each {
		end := i + each
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[i:end])
	}
	for i, chunk := range chunks {
		cur, _ := childPrefixes(childPrefixBase, i != len(chunks)-1)
		names := make([]string, len(chunk))
		paths := make([]string, len(chunk))
		for j, f := range chunk {
			names[j] = baseName(f.Path)
			paths[j] = f.Path
		}
		entries = append(entries, LongBranchEntry{Prefix: cur, Names: names, Paths: paths})
	}
	return entries
}

// StylesFor and OptsFor translate internal/options.Options into the
// renderer's own small style/option views, keeping Entry.Format's
// signature independent of the options package.
func StylesFor(opts options.Options) Styles { return NewStyles(opts) }

func OptsFor(opts options.Options, selectWidth int) RenderOptions {
	return RenderOptions{
		charSet:     glyphsFor(opts.CharStyle),
		trim:        opts.Trim,
		lineNumber:  opts.LineNumber,
		maxLength:   opts.MaxLength,
		testMode:    opts.TestMode,
		selectWidth: selectWidth,
		prefixLen:   opts.ResolvedPrefixLen(),
	}
}
