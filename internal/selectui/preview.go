package selectui

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Preview renders a syntax-highlighted slice of path centered on line
// (1-based; 0 means "no particular line"), up to maxLines rows, for the
// 'v' preview-pane keybinding. Highlighting falls back to plain text
// when chroma has no lexer for the file's extension or the highlight
// call itself fails, so a preview is never worse than unstyled content.
func Preview(path string, line, maxLines int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("selectui: open %s for preview: %w", path, err)
	}
	defer f.Close()

	var all []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		all = append(all, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("selectui: read %s for preview: %w", path, err)
	}

	start, end := windowAround(line, len(all), maxLines)
	source := strings.Join(all[start:end], "\n")

	var b strings.Builder
	lexer := lexerName(path)
	if err := quick.Highlight(&b, source, lexer, "terminal256", "monokai"); err != nil {
		return source, nil
	}
	return b.String(), nil
}

// windowAround picks a [start, end) slice of total lines centered on
// line (1-based), clamped to the available range.
func windowAround(line, total, maxLines int) (int, int) {
	if total == 0 {
		return 0, 0
	}
	if maxLines <= 0 || maxLines >= total {
		return 0, total
	}
	center := line - 1
	if center < 0 {
		center = 0
	}
	start := center - maxLines/2
	if start < 0 {
		start = 0
	}
	end := start + maxLines
	if end > total {
		end = total
		start = end - maxLines
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// lexerName maps a file's extension to a chroma lexer name, falling
// back to "plaintext"; chroma's own quick.Highlight also does
// extension-based lookup, but passing a name keyed off a dotless
// extension handles the common case without chroma's slower glob scan.
func lexerName(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "plaintext"
	}
	return ext
}
