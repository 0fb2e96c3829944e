// Package lines produces the physical lines of a stream lazily.
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

const bufferSize = 64 * 1024 // 64KB reads

// ErrInvalidUTF8 marks a line whose bytes do not decode as UTF-8
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Line is one physical line with its terminator stripped
type Line struct {
	Number  int    // 1-based
	Content string // empty when Err is set
	Err     error
}

// Read returns a single-pass sequence over the lines of r. Lines that fail
// to decode are yielded with Err set and the sequence continues; a read
// error is yielded once and ends the sequence.
func Read(r io.Reader) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		br := bufio.NewReaderSize(r, bufferSize)
		number := 0

		for {
			text, err := br.ReadString('\n')
			if text == "" && err == io.EOF {
				return
			}
			number++

			if err != nil && err != io.EOF {
				yield(Line{Number: number, Err: fmt.Errorf("read line %d: %w", number, err)})
				return
			}

			line := Line{Number: number, Content: trimTerminator(text)}
			if !utf8.ValidString(line.Content) {
				line = Line{Number: number, Err: fmt.Errorf("line %d: %w", number, ErrInvalidUTF8)}
			}

			if !yield(line) || err == io.EOF {
				return
			}
		}
	}
}

// trimTerminator removes a trailing "\n" or "\r\n"
func trimTerminator(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
