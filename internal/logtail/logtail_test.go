package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "racesearch.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf("time=t level=INFO msg=\"line %d\"", i))
	}
	path := writeLog(t, all)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: all},
		{name: "read all (negative)", maxLines: -1, expected: all},
		{name: "read partial (5)", maxLines: 5, expected: all[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: all},
		{name: "read more than exists (20)", maxLines: 20, expected: all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines, slog.LevelDebug)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_FiltersByLevel(t *testing.T) {
	path := writeLog(t, []string{
		`time=t level=DEBUG msg="search issued" generation=1`,
		`time=t level=WARN msg="retrying search" attempt=1`,
		`panic: boom`,
		`time=t level=INFO msg="search succeeded"`,
		`time=t level=ERROR msg="search failed"`,
	})

	got, err := Read(path, 0, slog.LevelWarn)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []string{
		`time=t level=WARN msg="retrying search" attempt=1`,
		`panic: boom`,
		`time=t level=ERROR msg="search failed"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Read() = %v, want %v", got, want)
	}

	got, err = Read(path, 1, slog.LevelWarn)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, want[2:]) {
		t.Fatalf("Read(1) = %v, want %v", got, want[2:])
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 5, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}
