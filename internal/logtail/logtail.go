package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the racesearch log at path,
// skipping records below minLevel. maxLines <= 0 returns every matching
// line. A missing file yields no lines.
func Read(path string, maxLines int, minLevel slog.Level) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	var (
		ring  []string
		count int
		idx   int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line, minLevel) {
			continue
		}
		if maxLines <= 0 {
			ring = append(ring, line)
			count++
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines <= 0 || count < maxLines {
		return ring[:count:count], nil
	}
	lines := make([]string, count)
	for i := range count {
		lines[i] = ring[(idx+i)%maxLines]
	}
	return lines, nil
}

// keep reports whether a slog text record is at or above minLevel. Lines
// without a level attribute, such as panics, are always kept.
func keep(line string, minLevel slog.Level) bool {
	level, ok := parseLevel(line)
	if !ok {
		return true
	}
	return level >= minLevel
}

func parseLevel(line string) (slog.Level, bool) {
	_, rest, found := strings.Cut(line, "level=")
	if !found {
		return 0, false
	}
	value, _, _ := strings.Cut(rest, " ")
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, false
	}
	return level, true
}
