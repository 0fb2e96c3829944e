package logger

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC)
}

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "INFO")

		require.NotNil(t, logger)
		assert.Equal(t, "info", logger.Level())
		assert.False(t, logger.colorOutput, "buffers never get colors")
	})

	t.Run("invalid level defaults to warn", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "chatty")
		assert.Equal(t, "warn", logger.Level())
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "trace")
		assert.False(t, logger.Enabled("error"))
		logger.Errorf("dropped %d", 1)
	})
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)
			logger.now = fixedClock

			logger.Tracef("t")
			logger.Debugf("d")
			logger.Infof("i")
			logger.Warnf("w")
			logger.Errorf("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				fields := strings.Fields(line)
				require.Len(t, fields, 3)
				got = append(got, strings.Trim(fields[1], "[]"))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "debug")
	logger.now = fixedClock

	logger.Debugf("scanning %s (%d bytes)", "a.txt", 42)
	assert.Equal(t, "[13:04:05] [DEBUG] scanning a.txt (42 bytes)\n", buf.String())
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("Debug"))
	assert.True(t, ValidLevel(" warn "))
	assert.False(t, ValidLevel("verbose"))
	assert.False(t, ValidLevel(""))
}

func TestConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Infof("worker %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for i := 0; i < 20; i++ {
		assert.Contains(t, buf.String(), fmt.Sprintf("worker %d\n", i))
	}
}
