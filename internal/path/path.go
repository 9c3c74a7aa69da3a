// Package path provides filesystem path canonicalisation for tgrep.
//
// Adapted from the teacher's document-path normalisation package: the
// shape (a small set of pure string functions guarding against a
// specific class of path hazard) is kept, but the hazard changes. The
// teacher guarded logical document-store paths against traversal and
// stripped a ".md" suffix; tgrep instead canonicalises real OS paths
// for the walker's root argument and folds symlink targets under the
// user's home directory to "~/…" for compact tree display (spec.md
// section 4 rendering of link targets, section 7's IoError on
// canonicalization failure).
//
// The teacher's Unix/Windows split existed to hand-roll backslash
// handling for logical paths; real OS paths are already handled
// correctly per-platform by path/filepath, so this package does not
// need the split.
package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalid indicates the provided path could not be canonicalised.
var ErrInvalid = errors.New("invalid path")

// Canonicalize resolves p to a cleaned absolute path, the IoError
// source named in spec.md section 7.
func Canonicalize(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalid)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalid, p, err)
	}
	return filepath.Clean(abs), nil
}

// FoldHome rewrites an absolute path under the user's home directory
// to start with "~", for compact rendering of symlink targets
// (spec.md scenario 4: "$HOME-rooted targets collapse to ~/…").
func FoldHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	rel, err := filepath.Rel(home, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.Join("~", rel)
}
