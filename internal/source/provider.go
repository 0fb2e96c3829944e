package source

import (
	"io"
	"iter"
	"strings"

	"github.com/TimelordUK/mgrep/internal/lines"
)

// LineProvider is the core abstraction for reading lines.
// The scanner only interacts with this interface.
type LineProvider interface {
	// Path identifies the source in output headers
	Path() string

	// Lines returns a single-pass sequence of the source's lines
	Lines() iter.Seq[lines.Line]

	// Close releases the underlying resources
	Close() error
}

// OpenFunc opens the provider for a path
type OpenFunc func(path string) (LineProvider, error)

// ReaderSource provides lines from an arbitrary reader
type ReaderSource struct {
	reader io.Reader
	path   string
}

// NewReaderSource wraps r under the given display path
func NewReaderSource(path string, r io.Reader) *ReaderSource {
	return &ReaderSource{reader: r, path: path}
}

// NewStringSource is a convenience for in-memory content
func NewStringSource(path, content string) *ReaderSource {
	return NewReaderSource(path, strings.NewReader(content))
}

// Path returns the display path
func (s *ReaderSource) Path() string {
	return s.path
}

// Lines returns the reader's lines
func (s *ReaderSource) Lines() iter.Seq[lines.Line] {
	return lines.Read(s.reader)
}

// Close closes the reader if it is closable
func (s *ReaderSource) Close() error {
	if c, ok := s.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
