package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSON(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(Options{Dir: dir})
	require.NoError(t, err)

	log.Warnw("token denied", "reason", "mismatch")
	_ = log.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	lines := splitLines(raw)
	require.Len(t, lines, 2) // "logger online" + the warning

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "token denied", entry["msg"])
	assert.Equal(t, "mismatch", entry["reason"])
}

func TestNew_LevelFilters(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	dir := t.TempDir()
	log, err := New(Options{Dir: dir, Level: zap.ErrorLevel})
	require.NoError(t, err)

	log.Infow("hidden")
	_ = log.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, FileName))
	if err == nil {
		assert.Empty(t, splitLines(raw))
	}
}

func splitLines(b []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range b {
		if c == '\n' {
			if i > start {
				out = append(out, b[start:i])
			}
			start = i + 1
		}
	}
	return out
}
