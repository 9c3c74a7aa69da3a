package render

import "github.com/jpl-au/tgrep/internal/model"

// OpenInfo describes how a committed Entry should be opened: a file path
// and an optional line number. Entries with no sensible open target
// (an overview entry, a long-branch entry spanning several files) return
// an error from OpenInfo instead.
type OpenInfo struct {
	Path    string
	Line    int
	HasLine bool
}

// Entry is the polymorphic capability set spec.md section 3 assigns to
// rendered rows: {format, depth, is_path, open_info}. Modelled as an
// interface rather than an inheritance hierarchy per spec.md section 9's
// design note.
type Entry interface {
	Format(s Styles, opts RenderOptions) string
	Depth() int
	IsPath() bool
	OpenInfo() (OpenInfo, error)
}

// RenderOptions is the subset of internal/options.Options the formatter
// consults, translated once by render.go so entry.go does not need to
// import the options package.
type RenderOptions struct {
	charSet     charSet
	trim        bool
	lineNumber  bool
	maxLength   int
	testMode    bool
	selectWidth int // terminal width to cap against in select mode; 0 disables
	prefixLen   int
}

// PathEntry names one directory or file node.
type PathEntry struct {
	Prefix     model.Prefix
	Name       string
	FullPath   string
	LinkTarget string
	ChildCount int
	FileCount  int
	IsDir      bool
}

func (e PathEntry) Depth() int    { return e.Prefix.Depth() }
func (e PathEntry) IsPath() bool  { return true }

func (e PathEntry) OpenInfo() (OpenInfo, error) {
	return OpenInfo{Path: e.FullPath}, nil
}

// LineEntry is one matched or context line of a file.
type LineEntry struct {
	Prefix     model.Prefix
	Content    string
	FilePath   string
	Matches    []model.Match
	LineNumber int
	IsContext  bool
}

func (e LineEntry) Depth() int   { return e.Prefix.Depth() }
func (e LineEntry) IsPath() bool { return false }

func (e LineEntry) OpenInfo() (OpenInfo, error) {
	return OpenInfo{Path: e.FilePath, Line: e.LineNumber, HasLine: true}, nil
}

// LongBranchEntry packs several sibling files' names onto a single row,
// per spec.md section 4.3's long-branch mode.
type LongBranchEntry struct {
	Prefix model.Prefix
	Names  []string
	Paths  []string
}

func (e LongBranchEntry) Depth() int   { return e.Prefix.Depth() }
func (e LongBranchEntry) IsPath() bool { return false }

func (e LongBranchEntry) OpenInfo() (OpenInfo, error) {
	return OpenInfo{}, errLongBranchNotOpenable
}

// OverviewEntry reports aggregate totals as the final row of a render
// pass, when enabled.
type OverviewEntry struct {
	Totals model.Totals
}

func (e OverviewEntry) Depth() int   { return 0 }
func (e OverviewEntry) IsPath() bool { return false }

func (e OverviewEntry) OpenInfo() (OpenInfo, error) {
	return OpenInfo{}, errOverviewNotOpenable
}
