package render

import (
	"strconv"
	"strings"

	"github.com/TimelordUK/mgrep/internal/config"
	"github.com/TimelordUK/mgrep/internal/match"
)

// Highlight markers. They wrap matched text in the output and never take
// part in offset calculations.
const (
	HighlightStart = "\x1b[43m" // yellow background
	HighlightEnd   = "\x1b[0m"  // reset
)

// Formatter turns raw lines into display lines for one run
type Formatter struct {
	cfg *config.RunConfig
}

// NewFormatter creates a formatter bound to cfg
func NewFormatter(cfg *config.RunConfig) *Formatter {
	return &Formatter{cfg: cfg}
}

// Format renders line number n. folded is the comparison copy produced by
// the run's matcher. The second result is false when the line is excluded.
// Output always carries the original text; in case-insensitive mode the
// folded copy is used only to find spans.
func (f *Formatter) Format(n int, original string, folded match.Folded) (string, bool) {
	spans := f.cfg.Matcher().Spans(folded)

	var out string
	switch {
	case len(spans) == 0 && !f.cfg.AllText():
		return "", false
	case len(spans) == 0 || !f.cfg.Highlight():
		out = original
	default:
		out = Highlight(original, spans)
	}

	if f.cfg.LineNumbers() {
		out = "Line " + strconv.Itoa(n) + ": " + out
	}
	return out, true
}

// Highlight wraps each span of line in markers, copying the text between
// spans unchanged. Zero-width spans produce an empty marker pair.
func Highlight(line string, spans []match.Span) string {
	var b strings.Builder
	b.Grow(len(line) + len(spans)*(len(HighlightStart)+len(HighlightEnd)))

	last := 0
	for _, s := range spans {
		b.WriteString(line[last:s.Start])
		b.WriteString(HighlightStart)
		b.WriteString(line[s.Start:s.End])
		b.WriteString(HighlightEnd)
		last = s.End
	}
	b.WriteString(line[last:])

	return b.String()
}

// StripMarkers removes highlight markers from s
func StripMarkers(s string) string {
	return strings.NewReplacer(HighlightStart, "", HighlightEnd, "").Replace(s)
}
