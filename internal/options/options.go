// Package options defines the immutable, process-wide search
// configuration described in spec.md section 2 ("Config (external)").
//
// An Options value is built once at startup (by cmd/tgrep, merging
// config-file defaults from internal/config with parsed flags) and
// passed down by value or pointer to every subsystem that needs it. It
// is never mutated after that first publication: every field is set
// before the first reader runs, matching the teacher's pattern of
// package-level flag variables read only through accessor functions
// (cmd/flags.go) rather than written to from deep in the call stack.
package options

import "runtime"

// CharStyle selects the glyph set used to draw tree branches.
type CharStyle string

const (
	CharStyleAscii   CharStyle = "ascii"
	CharStyleSingle  CharStyle = "single"
	CharStyleDouble  CharStyle = "double"
	CharStyleHeavy   CharStyle = "heavy"
	CharStyleRounded CharStyle = "rounded"
	CharStyleNone    CharStyle = "none"
)

// SearcherKind selects which engine produces Matches.
type SearcherKind string

const (
	SearcherTgrep SearcherKind = "tgrep"
	SearcherRg    SearcherKind = "rg"
)

// OpenStrategy selects how the line number is injected into the editor
// invocation, per spec.md section 4.4's open-strategy table.
type OpenStrategy string

const (
	OpenDefault OpenStrategy = "default"
	OpenVi      OpenStrategy = "vi"
	OpenHx      OpenStrategy = "hx"
	OpenCode    OpenStrategy = "code"
	OpenJed     OpenStrategy = "jed"
)

// GlobOverride is one --glob entry: a gitignore-style pattern, optionally
// negated with a leading "!".
type GlobOverride struct {
	Pattern string
	Negate  bool
}

// Options is the full set of knobs spec.md section 2 assigns to "Config".
type Options struct {
	// Root is the search root: a directory or a single file.
	Root string
	// Patterns is the ordered pattern list; PatternID in model.Match
	// indexes into it.
	Patterns []string
	Globs    []GlobOverride

	MaxDepth int // 0 means unlimited
	Threads  int // 0 means auto (min(NumCPU, 12))

	Hidden    bool
	Links     bool
	NoIgnore  bool
	FilesOnly bool
	Count     bool
	LineNumber bool
	Trim      bool
	Select    bool
	LongBranch     bool
	LongBranchEach int
	Overview       bool
	PCRE2          bool
	IgnoreCase     bool

	ContextBefore int
	ContextAfter  int

	CharStyle CharStyle
	PrefixLen int
	MaxLength int

	NoColor bool
	NoBold  bool

	Searcher SearcherKind

	Editor       string
	OpenStrategy *OpenStrategy // nil means infer from editor basename

	SelectionFile string
	RepeatFile    string
	Repeat        bool
	RepeatN       int // which past run to repeat; 0 means "the last one"

	// TestMode brackets match/path segments with [m<id>s]...[m<id>e] /
	// [ps]...[pe] instead of ANSI styling, for golden-file tests (spec.md
	// section 4.3).
	TestMode bool

	// HistoryEnabled turns on the SQLite run log described in
	// SPEC_FULL.md section 9.
	HistoryEnabled bool
	HistoryDBPath  string
}

// ResolvedThreads returns the effective worker count: the configured
// value if positive, else min(runtime.NumCPU(), 12) per spec.md section
// 4.1.
func (o Options) ResolvedThreads() int {
	if o.Threads > 0 {
		return o.Threads
	}
	n := runtime.NumCPU()
	if n > 12 {
		n = 12
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ResolvedLongBranchEach returns the configured chunk size, defaulting to
// 5 (spec.md section 6's --long-branch-each default).
func (o Options) ResolvedLongBranchEach() int {
	if o.LongBranchEach > 0 {
		return o.LongBranchEach
	}
	return 5
}

// ResolvedPrefixLen returns the configured path-segment trim length,
// defaulting to 3 (spec.md section 6's --prefix-len default).
func (o Options) ResolvedPrefixLen() int {
	if o.PrefixLen > 0 {
		return o.PrefixLen
	}
	return 3
}
