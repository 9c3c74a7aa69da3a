// Package matcher builds the multi-pattern regular expression matcher
// used by the search engine (internal/search): a combined alternation
// that cheaply tests whether a line has any hit at all, plus per-pattern
// expressions that attribute each hit back to the pattern that produced
// it.
//
// Grounded on the teacher's internal/grep.Run, which compiles a single
// flag-prefixed regexp.Regexp per invocation; this package generalises
// that to an ordered list of patterns compiled once and reused across
// every file a search visits.
package matcher

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/jpl-au/tgrep/internal/model"
)

// InvalidRegexError reports a pattern that failed to compile.
type InvalidRegexError struct {
	Pattern string
	Cause   error
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %v", e.Pattern, e.Cause)
}

func (e *InvalidRegexError) Unwrap() error { return e.Cause }

// Options configures pattern compilation.
type Options struct {
	IgnoreCase bool
	// PCRE2 is accepted for CLI-surface parity with spec.md section 6 but
	// Go's regexp package (RE2) is used for all matching; no PCRE2
	// binding is wired in.
	PCRE2 bool
}

// Matcher holds a combined alternation (used to decide whether a line
// has any hit) and one compiled expression per pattern (used to
// attribute each hit to its originating pattern).
type Matcher struct {
	patterns []string
	combined *regexp.Regexp
	perPat   []*regexp.Regexp
}

// New compiles patterns into a Matcher. Construction fails with
// *InvalidRegexError on the first pattern that does not compile, naming
// that pattern (spec.md section 4.1).
func New(patterns []string, opts Options) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("matcher: at least one pattern is required")
	}

	prefix := ""
	if opts.IgnoreCase {
		prefix = "(?i)"
	}

	perPat := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(prefix + p)
		if err != nil {
			return nil, &InvalidRegexError{Pattern: p, Cause: err}
		}
		perPat[i] = re
	}

	combinedSrc := prefix + "(?:" + join(patterns, ")|(?:") + ")"
	combined, err := regexp.Compile(combinedSrc)
	if err != nil {
		// Each pattern compiled individually above; a failure here means
		// the alternation itself is pathological (e.g. mismatched named
		// groups across patterns). Fall back to a combined matcher built
		// from non-capturing clones so named-group collisions can't
		// surface as a spurious, hard-to-diagnose error.
		combined, err = regexp.Compile(prefix + "(?:" + join(stripNames(patterns), ")|(?:") + ")")
		if err != nil {
			return nil, &InvalidRegexError{Pattern: combinedSrc, Cause: err}
		}
	}

	return &Matcher{patterns: patterns, combined: combined, perPat: perPat}, nil
}

// Patterns returns the ordered pattern list the Matcher was built from.
func (m *Matcher) Patterns() []string { return m.patterns }

// HasMatch reports whether line contains a hit for any pattern. It is
// the cheap first test the line sink runs before doing per-pattern work.
func (m *Matcher) HasMatch(line []byte) bool {
	return m.combined.Match(line)
}

// Find runs every per-pattern expression over line and returns one Match
// per hit, each tagged with the pattern that produced it. The returned
// slice is not yet overlap-eliminated; callers pass it through
// model.EliminateOverlaps once all hits for the line have been collected.
func (m *Matcher) Find(line []byte) []model.Match {
	var out []model.Match
	for pid, re := range m.perPat {
		for _, loc := range re.FindAllIndex(line, -1) {
			out = append(out, model.Match{PatternID: pid, Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// DecodeLine decodes raw line bytes as UTF-8, replacing invalid
// sequences (spec.md section 4.1 step 3), and returns the resulting
// string. Valid input is returned unchanged. No offset remapping is
// done: each replacement is three bytes wide, so byte offsets computed
// against raw no longer line up with the decoded string after the first
// invalid byte.
func DecodeLine(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	// utf8.Valid is false: decode rune by rune so each invalid byte
	// becomes exactly one U+FFFD at the same relative position in the
	// rune stream.
	var b []byte
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, "�"...)
			i++
			continue
		}
		b = append(b, raw[i:i+size]...)
		i += size
	}
	return string(b)
}

func join(ss []string, sep string) string {
	if len(ss) == 0 {
		return ""
	}
	out := ss[0]
	for _, s := range ss[1:] {
		out += sep + s
	}
	return out
}

// stripNames removes named capture groups, which cannot be duplicated
// across an alternation of independently-authored patterns.
func stripNames(patterns []string) []string {
	nameRe := regexp.MustCompile(`\(\?P<[^>]+>`)
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = nameRe.ReplaceAllString(p, "(?:")
	}
	return out
}
