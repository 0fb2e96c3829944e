package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Folded is the comparison copy of a line. When lowercasing changes the
// encoded length of a rune, origin maps each byte offset of Text back to
// the offset of the rune it came from in the original line.
type Folded struct {
	Text   string
	origin []int
}

// Identity returns a comparison copy equal to the line itself
func Identity(line string) Folded {
	return Folded{Text: line}
}

// Fold lowercases line rune by rune, recording offsets into the original.
// Invalid bytes are copied through unchanged.
func Fold(line string) Folded {
	var b strings.Builder
	b.Grow(len(line))
	origin := make([]int, 0, len(line)+1)
	shifted := false

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		start := b.Len()
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(line[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		for j := start; j < b.Len(); j++ {
			origin = append(origin, i)
		}
		if b.Len()-start != size {
			shifted = true
		}
		i += size
	}
	origin = append(origin, len(line))

	if !shifted {
		return Folded{Text: b.String()}
	}
	return Folded{Text: b.String(), origin: origin}
}
