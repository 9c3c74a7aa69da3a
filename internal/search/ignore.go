package search

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jpl-au/tgrep/internal/options"
)

// ignoreRule is one compiled line from a .gitignore-style file, or one
// --glob override.
//
// Grounded on the retrieved mjkoo-boris example's gitignoreStack
// (internal/tools/grep.go), generalised from a single push/pop stack
// (safe only for one sequential walker) into an immutable chain value
// that can be passed down independently to each branch of a concurrent
// walk (see dirTask.ignores in walk.go).
type ignoreRule struct {
	pattern string
	negate  bool
	dirOnly bool
}

// ignoreLevel is the compiled rule set contributed by one directory's
// .gitignore (or, for level 0, the --glob overrides).
type ignoreLevel struct {
	dir   string
	rules []ignoreRule
}

// ignoreChain is the ordered list of levels from the root down to the
// current directory; later levels (closer to the current directory)
// override earlier ones, matching git's own precedence.
type ignoreChain []ignoreLevel

func parseIgnoreLines(data []byte) []ignoreRule {
	var rules []ignoreRule
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r := ignoreRule{}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// loadIgnoreLevel reads dir's .gitignore and returns the resulting
// level; with noIgnore it returns an empty level without reading.
// Global gitignore and .git/info/exclude files are not read. A missing
// file yields an empty, harmless level.
func loadIgnoreLevel(dir string, noIgnore bool) ignoreLevel {
	if noIgnore {
		return ignoreLevel{dir: dir}
	}
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return ignoreLevel{dir: dir}
	}
	return ignoreLevel{dir: dir, rules: parseIgnoreLines(data)}
}

// globOverrideLevel turns --glob overrides into a single pseudo-level
// evaluated against the search root, so explicit overrides participate
// in the same negation precedence as .gitignore rules (spec.md section
// 4.1: "explicit glob overrides (gitignore-style with ! inverting)").
func globOverrideLevel(root string, globs []options.GlobOverride) ignoreLevel {
	lvl := ignoreLevel{dir: root}
	for _, g := range globs {
		lvl.rules = append(lvl.rules, ignoreRule{pattern: g.Pattern, negate: g.Negate})
	}
	return lvl
}

// extend returns a new chain with lvl appended, without mutating c -
// the levels are copied into a fresh backing array, so each branch of
// the concurrent walk owns its own slice.
func (c ignoreChain) extend(lvl ignoreLevel) ignoreChain {
	next := make(ignoreChain, len(c)+1)
	copy(next, c)
	next[len(c)] = lvl
	return next
}

// isIgnored reports whether path (with isDir known) is excluded by the
// chain. Later levels override earlier ones; within a level, later
// rules override earlier ones - both matching git's documented
// precedence.
func (c ignoreChain) isIgnored(path string, isDir bool) bool {
	ignored := false
	base := filepath.Base(path)
	for _, level := range c {
		for _, r := range level.rules {
			if r.dirOnly && !isDir {
				continue
			}
			if !ruleMatches(r, level.dir, path, base) {
				continue
			}
			ignored = !r.negate
		}
	}
	return ignored
}

func ruleMatches(r ignoreRule, levelDir, path, base string) bool {
	if m, _ := doublestar.Match(r.pattern, base); m {
		return true
	}
	rel, err := filepath.Rel(levelDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if m, _ := doublestar.Match(r.pattern, rel); m {
		return true
	}
	if !strings.Contains(r.pattern, "/") {
		if m, _ := doublestar.Match("**/"+r.pattern, rel); m {
			return true
		}
	}
	return false
}
