package lines

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(r io.Reader) []Line {
	var out []Line
	for line := range Read(r) {
		out = append(out, line)
	}
	return out
}

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "\n\nx\n", want: []string{"", "", "x"}},
		{name: "lone carriage return kept", input: "a\rb\n", want: []string{"a\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(strings.NewReader(tt.input))

			var contents []string
			for i, line := range got {
				require.NoError(t, line.Err)
				assert.Equal(t, i+1, line.Number)
				contents = append(contents, line.Content)
			}
			assert.Equal(t, tt.want, contents)
		})
	}
}

func TestReadLongLine(t *testing.T) {
	long := strings.Repeat("x", 3*bufferSize)
	got := collect(strings.NewReader("a\n" + long + "\nb"))

	require.Len(t, got, 3)
	assert.Equal(t, long, got[1].Content)
	assert.Equal(t, 3, got[2].Number)
}

func TestReadInvalidUTF8(t *testing.T) {
	got := collect(strings.NewReader("ok\n\xff\xfe\nstill ok\n"))

	require.Len(t, got, 3)
	assert.Equal(t, "ok", got[0].Content)

	assert.True(t, errors.Is(got[1].Err, ErrInvalidUTF8))
	assert.Equal(t, 2, got[1].Number)
	assert.Empty(t, got[1].Content)

	assert.NoError(t, got[2].Err)
	assert.Equal(t, "still ok", got[2].Content)
	assert.Equal(t, 3, got[2].Number)
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("first\n"), iotest.ErrReader(boom))

	got := collect(r)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.ErrorIs(t, got[1].Err, boom)
	assert.Equal(t, 2, got[1].Number)
}

func TestReadStopsEarly(t *testing.T) {
	var seen []int
	for line := range Read(strings.NewReader("1\n2\n3\n")) {
		seen = append(seen, line.Number)
		if line.Number == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}
