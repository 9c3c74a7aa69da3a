package search

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/jpl-au/tgrep/internal/matcher"
	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
)

// maxScanLine bounds a single line's length. Minified or binary-ish
// files can otherwise force bufio.Scanner's token buffer to grow without
// bound; 10MB mirrors the teacher's internal/grep default MaxLineLength.
const maxScanLine = 10 * 1024 * 1024

// isBinaryHeader reports whether header bytes look like binary content,
// by scanning for a NUL byte - the same heuristic ripgrep uses and the
// teacher's retrieved grep tool (internal/tools/grep.go in the
// mjkoo-boris example) reuses verbatim.
func isBinaryHeader(header []byte) bool {
	for _, b := range header {
		if b == 0 {
			return true
		}
	}
	return false
}

// scanFile implements the line sink contract of spec.md section 4.1: for
// every line the combined scanner reports, strip its line ending, run
// every per-pattern scanner, and - if any hit - decode, eliminate
// overlaps, and append a Line. It returns nil, nil for binary files and
// for files with zero matches (unless filesOnly keeps the file around
// with no lines, which the caller, not this function, decides).
func scanFile(path string, m *matcher.Matcher, opts options.Options) ([]model.Line, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	header := make([]byte, 512)
	n, _ := f.Read(header)
	header = header[:n]
	if isBinaryHeader(header) {
		return nil, 0, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxScanLine)

	var lines []model.Line
	lineNum := 0
	totalScanned := 0
	for scanner.Scan() {
		lineNum++
		totalScanned++
		raw := bytes.TrimRight(scanner.Bytes(), "\r")

		if !m.HasMatch(raw) {
			continue
		}
		hits := m.Find(raw)
		if len(hits) == 0 {
			continue
		}
		hits = model.EliminateOverlaps(hits)
		lines = append(lines, model.Line{
			Content: matcher.DecodeLine(raw),
			Number:  lineNum,
			Matches: hits,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, totalScanned, err
	}

	if opts.ContextBefore > 0 || opts.ContextAfter > 0 {
		lines = withContextLines(path, lines, opts)
	}

	return lines, totalScanned, nil
}

// withContextLines re-reads the file to materialise the non-matching
// context lines around each hit, then runs ComputeContextOffsets over
// the combined, number-sorted set, per spec.md section 4.1.
func withContextLines(path string, matchedLines []model.Line, opts options.Options) []model.Line {
	if len(matchedLines) == 0 {
		return matchedLines
	}
	f, err := os.Open(path)
	if err != nil {
		return matchedLines
	}
	defer f.Close()

	wanted := make(map[int]bool)
	for _, l := range matchedLines {
		for d := 1; d <= opts.ContextBefore; d++ {
			if l.Number-d > 0 {
				wanted[l.Number-d] = true
			}
		}
		for d := 1; d <= opts.ContextAfter; d++ {
			wanted[l.Number+d] = true
		}
	}

	byNumber := make(map[int]model.Line, len(matchedLines))
	for _, l := range matchedLines {
		byNumber[l.Number] = l
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxScanLine)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if _, already := byNumber[lineNum]; already {
			continue
		}
		if !wanted[lineNum] {
			continue
		}
		raw := bytes.TrimRight(scanner.Bytes(), "\r")
		byNumber[lineNum] = model.Line{
			Content:   matcher.DecodeLine(raw),
			Number:    lineNum,
			IsContext: true,
		}
	}

	out := make([]model.Line, 0, len(byNumber))
	for _, l := range byNumber {
		out = append(out, l)
	}
	sortLinesByNumber(out)
	matcher.ComputeContextOffsets(out)
	return out
}

func sortLinesByNumber(lines []model.Line) {
	for i := 1; i < len(lines); i++ {
		j := i
		for j > 0 && lines[j-1].Number > lines[j].Number {
			lines[j-1], lines[j] = lines[j], lines[j-1]
			j--
		}
	}
}
