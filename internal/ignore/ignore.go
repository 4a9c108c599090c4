// Package ignore compiles glob ignore patterns into a path matcher.
//
// Patterns are evaluated against whole normalized relative paths
// ('/'-separated, no leading slash). Syntax:
//   - `*` matches any run of characters within one path segment
//   - `**` matches across segments and must stand alone as a segment
//   - `?` matches exactly one non-separator character
//
// Everything else is literal. There is no negation syntax: a pattern
// can only hide paths, never un-hide them.
package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError reports a malformed glob pattern. It is returned from
// Compile before any traversal I/O happens.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("ignore: invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Matcher tests normalized relative paths against a compiled pattern
// set. A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	res []*regexp.Regexp
}

// Compile translates the ordered pattern set into a Matcher. The first
// malformed pattern aborts compilation with a PatternError.
func Compile(patterns []string) (*Matcher, error) {
	m := &Matcher{res: make([]*regexp.Regexp, 0, len(patterns))}
	for _, pat := range patterns {
		expr, err := translate(pat)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &PatternError{Pattern: pat, Reason: err.Error()}
		}
		m.res = append(m.res, re)
	}
	return m, nil
}

// Matches reports whether any pattern matches the given normalized
// relative path.
func (m *Matcher) Matches(rel string) bool {
	for _, re := range m.res {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.res) }

// translate converts one glob pattern into an anchored regexp.
func translate(pat string) (string, error) {
	if pat == "" {
		return "", &PatternError{Pattern: pat, Reason: "empty pattern"}
	}
	if strings.HasPrefix(pat, "!") {
		return "", &PatternError{Pattern: pat, Reason: "negation is not supported"}
	}
	if strings.Contains(pat, "***") {
		return "", &PatternError{Pattern: pat, Reason: "too many consecutive stars"}
	}

	segs := strings.Split(pat, "/")
	var b strings.Builder
	b.WriteString(`\A`)
	for i, seg := range segs {
		last := i == len(segs)-1
		switch {
		case seg == "":
			return "", &PatternError{Pattern: pat, Reason: "empty path segment"}
		case seg == "**":
			if last {
				if i == 0 {
					// `**` alone matches everything.
					b.WriteString(`.*`)
				} else {
					// `a/**` matches what is inside a, not a itself.
					b.WriteString(`.+`)
				}
			} else {
				// Matches zero or more whole segments, separators included.
				b.WriteString(`(?:[^/]+/)*`)
			}
		case strings.Contains(seg, "**"):
			return "", &PatternError{Pattern: pat, Reason: "`**` must be a whole path segment"}
		default:
			for _, r := range seg {
				switch r {
				case '*':
					b.WriteString(`[^/]*`)
				case '?':
					b.WriteString(`[^/]`)
				default:
					b.WriteString(regexp.QuoteMeta(string(r)))
				}
			}
			if !last {
				b.WriteString(`/`)
			}
		}
	}
	b.WriteString(`\z`)
	return b.String(), nil
}
