package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Line is one record of the application log with its parsed level.
type Line struct {
	Text  string
	Level slog.Level
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]Line, error) {
	if maxLines <= 0 || strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	start := 0
	if count == maxLines {
		start = idx
	}
	lines := make([]Line, count)
	for i := range count {
		text := ring[(start+i)%maxLines]
		lines[i] = Line{Text: text, Level: ParseLevel(text)}
	}
	return lines, nil
}

// ParseLevel extracts the level of a record written by the text or JSON
// slog handler. Lines without a recognizable level are treated as info.
func ParseLevel(line string) slog.Level {
	for _, marker := range []string{"level=", `"level":"`} {
		i := strings.Index(line, marker)
		if i < 0 {
			continue
		}
		rest := line[i+len(marker):]
		if end := strings.IndexAny(rest, ` "`); end >= 0 {
			rest = rest[:end]
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(rest)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}
