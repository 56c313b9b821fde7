package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.log")
	var content strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&content, "Line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(content.String()), 0o644))
	return path
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestRead(t *testing.T) {
	path := writeLines(t, 10)

	tests := []struct {
		name     string
		maxLines int
		first    string
		count    int
	}{
		{name: "zero reads nothing", maxLines: 0},
		{name: "negative reads nothing", maxLines: -1},
		{name: "partial keeps the tail", maxLines: 5, first: "Line 6", count: 5},
		{name: "exact", maxLines: 10, first: "Line 1", count: 10},
		{name: "more than exists", maxLines: 20, first: "Line 1", count: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Read(path, tt.maxLines)
			require.NoError(t, err)
			require.Len(t, lines, tt.count)
			if tt.count > 0 {
				assert.Equal(t, tt.first, lines[0].Text)
				assert.Equal(t, "Line 10", lines[len(lines)-1].Text)
			}
		})
	}
}

func TestRead_WrapsInOrder(t *testing.T) {
	path := writeLines(t, 7)
	lines, err := Read(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Line 5", "Line 6", "Line 7"}, texts(lines))
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = Read("", 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		line string
		want slog.Level
	}{
		{`time=2026-01-02T10:00:00Z level=WARN msg="refresh failed"`, slog.LevelWarn},
		{`time=2026-01-02T10:00:00Z level=ERROR msg=boom`, slog.LevelError},
		{`time=2026-01-02T10:00:00Z level=DEBUG msg=cache`, slog.LevelDebug},
		{`{"time":"2026-01-02T10:00:00Z","level":"ERROR","msg":"x"}`, slog.LevelError},
		{`{"level":"WARN+2","msg":"x"}`, slog.LevelWarn + 2},
		{"plain text", slog.LevelInfo},
		{"level=LOUD msg=x", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.line), tt.line)
	}
}
