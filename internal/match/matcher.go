package match

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) within a line
type Span struct {
	Start int
	End   int
}

// PatternError reports a pattern that failed to compile
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Matcher wraps a compiled regular expression.
// It is immutable and safe for concurrent use by multiple scanners.
type Matcher struct {
	re              *regexp.Regexp
	source          string
	caseInsensitive bool
}

// Compile builds a matcher from a user pattern. In case-insensitive mode
// the pattern source is lowercased before compilation; lines are expected
// to be lowercased the same way through Prepare.
func Compile(pattern string, caseInsensitive bool) (*Matcher, error) {
	src := pattern
	if caseInsensitive {
		src = LowerPattern(pattern)
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}

	return &Matcher{
		re:              re,
		source:          src,
		caseInsensitive: caseInsensitive,
	}, nil
}

// String returns the effective pattern source
func (m *Matcher) String() string {
	return m.source
}

// CaseInsensitive reports whether lines must be folded before matching
func (m *Matcher) CaseInsensitive() bool {
	return m.caseInsensitive
}

// FindMatches returns every match in line, ordered and non-overlapping
func (m *Matcher) FindMatches(line string) []Span {
	locs := m.re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]Span, len(locs))
	for i, loc := range locs {
		spans[i] = Span{Start: loc[0], End: loc[1]}
	}
	return spans
}

// IsMatch reports whether FindMatches would return at least one span
func (m *Matcher) IsMatch(line string) bool {
	return m.re.MatchString(line)
}

// Prepare builds the comparison copy of a line for this matcher
func (m *Matcher) Prepare(line string) Folded {
	if m.caseInsensitive {
		return Fold(line)
	}
	return Identity(line)
}

// Spans matches against the comparison copy and returns the spans
// translated to byte offsets of the original line.
func (m *Matcher) Spans(f Folded) []Span {
	spans := m.FindMatches(f.Text)
	if f.origin == nil {
		return spans
	}
	for i := range spans {
		spans[i].Start = f.origin[spans[i].Start]
		spans[i].End = f.origin[spans[i].End]
	}
	return spans
}

// LowerPattern lowercases the literal parts of a pattern. Escape
// sequences, Unicode class names, group names and flag groups are copied
// as-is, since lowering them would change their meaning (\W vs \w, (?U)).
func LowerPattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	quoted := false
	for i := 0; i < len(pattern); {
		if quoted {
			if strings.HasPrefix(pattern[i:], `\E`) {
				b.WriteString(`\E`)
				i += 2
				quoted = false
				continue
			}
			r, size := utf8.DecodeRuneInString(pattern[i:])
			b.WriteRune(unicode.ToLower(r))
			i += size
			continue
		}

		switch {
		case pattern[i] == '\\':
			n := escapeLen(pattern[i:])
			if strings.HasPrefix(pattern[i:], `\Q`) {
				quoted = true
			}
			b.WriteString(pattern[i : i+n])
			i += n
		case strings.HasPrefix(pattern[i:], "(?"):
			n := groupPrefixLen(pattern[i:])
			b.WriteString(pattern[i : i+n])
			i += n
		default:
			r, size := utf8.DecodeRuneInString(pattern[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteByte(pattern[i])
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			i += size
		}
	}

	return b.String()
}

// escapeLen returns the length of the escape sequence at the start of s
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	n := 1 + size

	switch s[1] {
	case 'p', 'P':
		if n < len(s) && s[n] == '{' {
			if end := strings.IndexByte(s[n:], '}'); end >= 0 {
				return n + end + 1
			}
			return len(s)
		}
		if n < len(s) {
			_, size := utf8.DecodeRuneInString(s[n:])
			return n + size
		}
	}
	return n
}

// groupPrefixLen returns the length of a "(?flags:", "(?flags)",
// "(?P<name>" or "(?<name>" prefix at the start of s
func groupPrefixLen(s string) int {
	rest := s[2:]
	if strings.HasPrefix(rest, "P<") || strings.HasPrefix(rest, "<") {
		if end := strings.IndexByte(rest, '>'); end >= 0 {
			return 2 + end + 1
		}
		return len(s)
	}
	if end := strings.IndexAny(rest, ":)"); end >= 0 {
		return 2 + end + 1
	}
	return len(s)
}
