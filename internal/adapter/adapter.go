// Package adapter invokes a peer search program discovered on PATH and
// translates its line-delimited JSON protocol into the same model.Matches
// shape internal/search produces, so the rest of the pipeline never
// needs to know which engine found a hit.
//
// Grounded on the teacher's internal/grep.Run (Options struct, Run(ctx,
// w, ...) shape), adapted from in-process document-store queries to an
// os/exec subprocess plus a bufio.Scanner over its stdout.
package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
)

// AdapterError reports a record the peer emitted that could not be
// parsed into the expected protocol shape.
type AdapterError struct {
	Record string
	Cause  error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter: malformed record %q: %v", e.Record, e.Cause)
}

func (e *AdapterError) Unwrap() error { return e.Cause }

// SearcherFailed reports a non-zero peer exit with non-empty stderr.
type SearcherFailed struct {
	Program string
	Stderr  string
}

func (e *SearcherFailed) Error() string {
	return fmt.Sprintf("adapter: %s failed: %s", e.Program, e.Stderr)
}

// peerBinary resolves the command name for a searcher kind. rg is the
// only supported external peer today (spec.md section 6's --searcher
// {tgrep,rg}); "tgrep" never reaches this package since it is handled by
// internal/search directly.
func peerBinary(kind options.SearcherKind) (string, error) {
	switch kind {
	case options.SearcherRg:
		return "rg", nil
	default:
		return "", fmt.Errorf("adapter: unsupported external searcher %q", kind)
	}
}

// buildArgs assembles the peer's command line per spec.md section 4.2:
// flags are always long options, color disabled, line numbers forced,
// one --regexp= per pattern, then the root path.
func buildArgs(opts options.Options) []string {
	args := []string{"--json", "--color=never", "--line-number"}
	if opts.PCRE2 {
		args = append(args, "--pcre2")
	}
	if opts.Hidden {
		args = append(args, "--hidden")
	}
	if opts.MaxDepth > 0 {
		args = append(args, fmt.Sprintf("--max-depth=%d", opts.MaxDepth))
	}
	if opts.Threads > 0 {
		args = append(args, fmt.Sprintf("--threads=%d", opts.Threads))
	}
	if opts.Links {
		args = append(args, "--follow")
	}
	if opts.NoIgnore {
		args = append(args, "--no-ignore")
	}
	if opts.IgnoreCase {
		args = append(args, "--ignore-case")
	}
	for _, p := range opts.Patterns {
		args = append(args, "--regexp="+p)
	}
	args = append(args, opts.Root)
	return args
}

// Run invokes the peer searcher and returns the resulting Matches and
// Totals. Per-record parse failures abort the whole run with
// *AdapterError; a non-zero peer exit with stderr content aborts with
// *SearcherFailed.
func Run(ctx context.Context, opts options.Options) (model.Matches, model.Totals, error) {
	program, err := peerBinary(opts.Searcher)
	if err != nil {
		return model.Matches{}, model.Totals{}, err
	}
	if _, err := exec.LookPath(program); err != nil {
		return model.Matches{}, model.Totals{}, fmt.Errorf("adapter: %s not found on PATH: %w", program, err)
	}

	cmd := exec.CommandContext(ctx, program, buildArgs(opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return model.Matches{}, model.Totals{}, err
	}

	if err := cmd.Start(); err != nil {
		return model.Matches{}, model.Totals{}, err
	}

	b := newBuilder(opts)
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var parseErr error
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := b.consume(line); err != nil {
			parseErr = err
			break
		}
	}
	if parseErr == nil {
		parseErr = scanner.Err()
	}

	waitErr := cmd.Wait()
	if waitErr != nil && stderr.Len() > 0 {
		return model.Matches{}, model.Totals{}, &SearcherFailed{Program: program, Stderr: stderr.String()}
	}
	if parseErr != nil {
		return model.Matches{}, model.Totals{}, parseErr
	}
	if waitErr != nil {
		return model.Matches{}, model.Totals{}, waitErr
	}

	matches := model.Matches{Dirs: b.arena}
	return matches, model.Summarise(matches), nil
}

// record is the subset of the peer's JSON protocol this adapter reads;
// every other field in a real record is ignored.
type record struct {
	Type string `json:"type"`
	Data struct {
		Path struct {
			Text string `json:"text"`
		} `json:"path"`
		LineNumber int `json:"line_number"`
		Lines      struct {
			Text  string `json:"text"`
			Bytes string `json:"bytes"`
		} `json:"lines"`
		Submatches []struct {
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"submatches"`
	} `json:"data"`
}

// builder holds the in-progress arena and the file currently open
// between a "begin" and its matching "end" record.
type builder struct {
	opts        options.Options
	root        string
	arena       model.Arena
	pathToIndex map[string]int
	current     *model.File
	currentDir  int
}

func newBuilder(opts options.Options) *builder {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		root = opts.Root
	}
	b := &builder{opts: opts, root: root, pathToIndex: make(map[string]int)}
	b.ensureDir(root)
	return b
}

func (b *builder) ensureDir(path string) int {
	if idx, ok := b.pathToIndex[path]; ok {
		return idx
	}
	if path == b.root {
		idx := len(b.arena)
		b.arena = append(b.arena, model.Directory{Path: path})
		b.pathToIndex[path] = idx
		return idx
	}
	parentIdx := b.ensureDir(filepath.Dir(path))
	idx := len(b.arena)
	b.arena = append(b.arena, model.Directory{Path: path})
	b.pathToIndex[path] = idx
	b.arena[parentIdx].Children = append(b.arena[parentIdx].Children, idx)
	return idx
}

// lineContent resolves a match record's "lines" field to the matched
// line's content per the spec.md section 4.2 protocol table: rg emits
// UTF-8 lines as "text" and falls back to base64 "bytes" for lines that
// aren't valid UTF-8, in which case "text" is empty. Either way "text"
// carries the line's own trailing newline, which model.Line requires
// stripped (model.go's "LF/CRLF stripped" invariant).
func lineContent(text, encodedBytes string) string {
	if text == "" && encodedBytes != "" {
		if decoded, err := base64.StdEncoding.DecodeString(encodedBytes); err == nil {
			text = string(decoded)
		}
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text
}

// consume parses and applies one protocol record, per the table in
// spec.md section 4.2.
func (b *builder) consume(raw []byte) error {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return &AdapterError{Record: string(raw), Cause: err}
	}

	switch rec.Type {
	case "begin":
		path := rec.Data.Path.Text
		if path == "" {
			return &AdapterError{Record: string(raw), Cause: fmt.Errorf("begin record missing data.path.text")}
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		dirIdx := b.ensureDir(filepath.Dir(path))
		f := model.File{Path: path}
		b.current = &f
		b.currentDir = dirIdx

	case "match":
		if b.opts.FilesOnly {
			return nil
		}
		if b.current == nil {
			return &AdapterError{Record: string(raw), Cause: fmt.Errorf("match record with no open file")}
		}
		content := lineContent(rec.Data.Lines.Text, rec.Data.Lines.Bytes)
		matches := make([]model.Match, 0, len(rec.Data.Submatches))
		for _, sm := range rec.Data.Submatches {
			matches = append(matches, model.Match{PatternID: 0, Start: sm.Start, End: sm.End})
		}
		matches = model.EliminateOverlaps(matches)
		b.current.Lines = append(b.current.Lines, model.Line{
			Content: content,
			Number:  rec.Data.LineNumber,
			Matches: matches,
		})

	case "end":
		if b.current != nil {
			if len(b.current.Lines) > 0 || b.opts.FilesOnly {
				b.arena[b.currentDir].Files = append(b.arena[b.currentDir].Files, *b.current)
			}
			b.current = nil
		}

	default:
		// Unknown record types (e.g. rg's "summary") are ignored per
		// spec.md section 4.2.
	}
	return nil
}
