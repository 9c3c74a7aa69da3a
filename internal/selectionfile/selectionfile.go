// Package selectionfile writes the two-line hand-off file the
// interactive selector leaves behind for a calling shell when a
// --selection-file path is configured, per spec.md section 8: the
// chosen file's path, then its line number (omitted when the open_info
// carries none), LF-terminated.
package selectionfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Write records path and, when hasLine is true, line to file, one per
// line. A shell wrapper reads this back after tgrep exits to jump its
// own editor invocation to the chosen location.
func Write(file, path string, line int, hasLine bool) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("selectionfile: create %s: %w", file, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, path); err != nil {
		return fmt.Errorf("selectionfile: write path: %w", err)
	}
	if hasLine {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("selectionfile: write line: %w", err)
		}
	}
	return nil
}

// Read parses a selection-file back into its path and (if present) line
// number, mirroring Write's two-line shape.
func Read(file string) (path string, line int, hasLine bool, err error) {
	f, err := os.Open(file)
	if err != nil {
		return "", 0, false, fmt.Errorf("selectionfile: open %s: %w", file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", 0, false, fmt.Errorf("selectionfile: %s is empty", file)
	}
	path = strings.TrimRight(scanner.Text(), "\r")

	if scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		if text != "" {
			n, convErr := strconv.Atoi(text)
			if convErr != nil {
				return "", 0, false, fmt.Errorf("selectionfile: invalid line number %q: %w", text, convErr)
			}
			line, hasLine = n, true
		}
	}
	return path, line, hasLine, scanner.Err()
}
