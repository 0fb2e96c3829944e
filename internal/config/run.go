package config

import (
	"github.com/TimelordUK/mgrep/internal/match"
)

// Options are the resolved flags for one invocation
type Options struct {
	Pattern     string
	IgnoreCase  bool
	LineNumbers bool
	Highlight   bool
	AllText     bool
	MaxWorkers  int
}

// Options returns the file defaults for the given pattern
func (c *Config) Options(pattern string) Options {
	return Options{
		Pattern:     pattern,
		IgnoreCase:  c.Search.IgnoreCase,
		LineNumbers: c.Search.LineNumbers,
		Highlight:   c.Search.Highlight,
		AllText:     c.Search.AllText,
		MaxWorkers:  c.Output.MaxWorkers,
	}
}

// RunConfig is the immutable configuration shared by every scanner.
// Build it once with NewRunConfig; nothing mutates it afterwards.
type RunConfig struct {
	matcher     *match.Matcher
	lineNumbers bool
	highlight   bool
	allText     bool
	maxWorkers  int
}

// NewRunConfig compiles the pattern and resolves flag interactions.
// A bad pattern is returned as *match.PatternError.
func NewRunConfig(opts Options) (*RunConfig, error) {
	m, err := match.Compile(opts.Pattern, opts.IgnoreCase)
	if err != nil {
		return nil, err
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers < 0 {
		maxWorkers = 0
	}

	return &RunConfig{
		matcher:     m,
		lineNumbers: opts.LineNumbers,
		highlight:   opts.Highlight || opts.AllText, // all-text implies highlight
		allText:     opts.AllText,
		maxWorkers:  maxWorkers,
	}, nil
}

// Matcher returns the compiled pattern
func (c *RunConfig) Matcher() *match.Matcher { return c.matcher }

// CaseInsensitive reports whether lines are folded before matching
func (c *RunConfig) CaseInsensitive() bool { return c.matcher.CaseInsensitive() }

// LineNumbers reports whether output lines get a "Line N: " prefix
func (c *RunConfig) LineNumbers() bool { return c.lineNumbers }

// Highlight reports whether matched spans are wrapped in markers
func (c *RunConfig) Highlight() bool { return c.highlight }

// AllText reports whether non-matching lines are printed too
func (c *RunConfig) AllText() bool { return c.allText }

// MaxWorkers is the concurrency bound; 0 means one worker per file
func (c *RunConfig) MaxWorkers() int { return c.maxWorkers }
