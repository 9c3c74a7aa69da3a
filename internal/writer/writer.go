// Package writer writes a rendered entry sequence to an io.Writer
// directly, for the non-interactive path (spec.md section 2's Writer
// collaborator, used whenever --select is not given).
//
// Grounded on the teacher's cmd.PrintJSON/PrintJSONError pattern: one
// small function per output shape, all funnelled through a single
// io.Writer so tests can capture output without touching os.Stdout.
package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/render"
)

// Write formats every entry and writes it to w, one per line, mirroring
// the teacher's plain-text command output.
func Write(w io.Writer, entries []render.Entry, opts options.Options) error {
	styles := render.StylesFor(opts)
	rOpts := render.OptsFor(opts, 0)
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Format(styles, rOpts)); err != nil {
			return err
		}
	}
	return nil
}

// jsonTotals mirrors model.Totals with JSON field names; kept separate
// from model.Totals so the wire shape can evolve independently of the
// in-process struct.
type jsonTotals struct {
	Directories int `json:"directories"`
	Files       int `json:"files"`
	Lines       int `json:"lines"`
	Matches     int `json:"matches"`
}

// jsonResult is the --output=json envelope for a completed search.
type jsonResult struct {
	Entries []string   `json:"entries"`
	Totals  jsonTotals `json:"totals"`
}

// WriteJSON formats entries and totals as a single JSON object, for
// --output=json, grounded on the teacher's PrintJSON convention of one
// marshalled object per command.
func WriteJSON(w io.Writer, entries []render.Entry, totals model.Totals, opts options.Options) error {
	styles := render.StylesFor(options.Options{NoColor: true})
	rOpts := render.OptsFor(options.Options{NoColor: true, CharStyle: opts.CharStyle, Trim: opts.Trim, LineNumber: opts.LineNumber}, 0)

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Format(styles, rOpts)
	}

	result := jsonResult{
		Entries: lines,
		Totals: jsonTotals{
			Directories: totals.Directories,
			Files:       totals.Files,
			Lines:       totals.Lines,
			Matches:     totals.Matches,
		},
	}
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("writer: marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteJSONError prints a single-field JSON error envelope, mirroring
// the teacher's PrintJSONError.
func WriteJSONError(w io.Writer, err error) error {
	b, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return marshalErr
	}
	_, writeErr := fmt.Fprintln(w, string(b))
	return writeErr
}
