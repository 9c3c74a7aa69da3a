// Package run orchestrates one tgrep invocation: selecting an engine
// (in-process search or a peer-searcher adapter), rendering the result,
// writing it out or driving the interactive selector, and recording
// history. It is the shared core between cmd's CLI entry point and
// internal/mcp's tool handlers, so both surfaces exercise exactly the
// same §4.1-4.3 pipeline.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/tgrep/internal/adapter"
	"github.com/jpl-au/tgrep/internal/history"
	"github.com/jpl-au/tgrep/internal/matcher"
	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/render"
	"github.com/jpl-au/tgrep/internal/search"
	"github.com/jpl-au/tgrep/internal/selectui"
	"github.com/jpl-au/tgrep/internal/term"
	"github.com/jpl-au/tgrep/internal/writer"
)

// Result is the outcome of a completed search, enough for a caller to
// print a summary or record history without re-deriving it.
type Result struct {
	Matches model.Matches
	Totals  model.Totals
	Entries []render.Entry
	Digest  string
}

// Search runs the configured engine (tgrep's in-process walker or a
// peer searcher) and builds the render entries for opts, per spec.md
// sections 4.1-4.3. It does not write anything.
func Search(ctx context.Context, opts options.Options) (Result, error) {
	var matches model.Matches
	var totals model.Totals
	var err error

	if opts.Searcher == options.SearcherTgrep {
		m, mErr := matcher.New(opts.Patterns, matcher.Options{IgnoreCase: opts.IgnoreCase, PCRE2: opts.PCRE2})
		if mErr != nil {
			return Result{}, fmt.Errorf("compiling patterns: %w", mErr)
		}
		matches, totals, err = search.Run(opts, m)
	} else {
		matches, totals, err = adapter.Run(ctx, opts)
	}
	if err != nil {
		return Result{}, err
	}

	var digest string
	if opts.HistoryEnabled {
		digest = search.ComputeDigests(matches)
	}

	entries := render.Build(matches, opts)
	return Result{Matches: matches, Totals: totals, Entries: entries, Digest: digest}, nil
}

// WriteResult writes a completed Result's entries to w as the plain-text
// tree. Choosing between this and WriteResultJSON happens at the call
// site in cmd; tests and MCP handlers use the plain tree writer directly.
func WriteResult(w io.Writer, r Result, opts options.Options) error {
	return writer.Write(w, r.Entries, opts)
}

// WriteResultJSON writes a completed Result as a single JSON object.
func WriteResultJSON(w io.Writer, r Result, opts options.Options) error {
	return writer.WriteJSON(w, r.Entries, r.Totals, opts)
}

// RecordHistory appends a history row for a completed search when
// opts.HistoryEnabled, tagging the searcher name the caller supplies
// (e.g. "mcp" for MCP tool calls, per SPEC_FULL.md section 10).
func RecordHistory(opts options.Options, r Result, searcherTag string) {
	if !opts.HistoryEnabled {
		return
	}
	history.Record(opts.Root, opts.Patterns, searcherTag).
		Counts(r.Totals.Files, r.Totals.Lines, r.Totals.Matches).
		Digest(r.Digest).
		Write()
}

// Select drives the interactive selector over a completed Result,
// returning the user's choice. Mutually exclusive with MCP mode, which
// never claims the terminal (spec.md section 4.4, SPEC_FULL.md section
// 10).
func Select(t *term.Terminal, r Result, opts options.Options) (selectui.Result, error) {
	return selectui.Run(t, r.Entries, opts)
}
