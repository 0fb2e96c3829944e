//go:build unix

package source

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFIFOReadsStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe")
	require.NoError(t, syscall.Mkfifo(path, 0600))

	go func() {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer f.Close()
		f.WriteString("first\nsecond\n")
	}()

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.IsType(t, &ReaderSource{}, src)
	assert.Equal(t, []string{"first", "second"}, contents(src))
}
