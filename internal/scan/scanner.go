// Package scan applies a run's pattern and formatting to a stream of lines.
package scan

import (
	"io"
	"iter"

	"github.com/TimelordUK/mgrep/internal/config"
	"github.com/TimelordUK/mgrep/internal/lines"
	"github.com/TimelordUK/mgrep/internal/render"
)

// SkipFunc is told about each line dropped because it could not be read
type SkipFunc func(line lines.Line)

// Scanner formats the qualifying lines of a stream.
// A Scanner holds no per-scan state and may be shared by goroutines.
type Scanner struct {
	cfg       *config.RunConfig
	formatter *render.Formatter
	onSkip    SkipFunc
}

// New creates a scanner for cfg. onSkip may be nil.
func New(cfg *config.RunConfig, onSkip SkipFunc) *Scanner {
	return &Scanner{
		cfg:       cfg,
		formatter: render.NewFormatter(cfg),
		onSkip:    onSkip,
	}
}

// Scan reads r to the end and returns its formatted lines in read order
func (s *Scanner) Scan(r io.Reader) []string {
	return s.ScanLines(lines.Read(r))
}

// ScanLines formats a line sequence. Lines carrying a read or decode error
// are skipped; they still count towards line numbering.
func (s *Scanner) ScanLines(seq iter.Seq[lines.Line]) []string {
	var out []string
	matcher := s.cfg.Matcher()

	for line := range seq {
		if line.Err != nil {
			if s.onSkip != nil {
				s.onSkip(line)
			}
			continue
		}

		formatted, ok := s.formatter.Format(line.Number, line.Content, matcher.Prepare(line.Content))
		if ok {
			out = append(out, formatted)
		}
	}

	return out
}
