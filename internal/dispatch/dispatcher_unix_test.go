//go:build unix

package dispatch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/TimelordUK/mgrep/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSearchesFIFO(t *testing.T) {
	dir := t.TempDir()
	fifo := filepath.Join(dir, "pipe")
	require.NoError(t, syscall.Mkfifo(fifo, 0600))
	regular := writeFile(t, dir, "plain.txt", "Rust too\n")

	go func() {
		f, err := os.OpenFile(fifo, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer f.Close()
		f.WriteString("Rust here\nnothing\nmore Rust\n")
	}()

	var out, errOut bytes.Buffer
	d := New(runConfig(t, config.Options{Pattern: "Rust", LineNumbers: true}), &out, &errOut)

	summary, err := d.Run([]string{fifo, regular})
	require.NoError(t, err)
	assert.Empty(t, errOut.String())
	assert.Equal(t, map[string][]string{
		fifo:    {"Line 1: Rust here", "Line 3: more Rust"},
		regular: {"Line 1: Rust too"},
	}, blocks(t, out.String()))
	assert.Equal(t, 2, summary.Matched)
}

func TestRunSearchesProcFile(t *testing.T) {
	const status = "/proc/self/status"
	if _, err := os.Stat(status); err != nil {
		t.Skip("no procfs")
	}

	var out, errOut bytes.Buffer
	d := New(runConfig(t, config.Options{Pattern: "^Name:"}), &out, &errOut)

	summary, err := d.Run([]string{status})
	require.NoError(t, err)
	assert.Empty(t, errOut.String())

	got := blocks(t, out.String())[status]
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "Name:"))
	assert.Equal(t, 1, summary.Lines)
}
