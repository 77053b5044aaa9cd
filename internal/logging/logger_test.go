package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("retrying", "attempt", 2)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=retrying")
	require.Contains(t, out, "attempt=2")
	require.Contains(t, out, "app=racesearch")
}

func TestNew_NilWriterDiscards(t *testing.T) {
	logger := New(nil, slog.LevelDebug)
	require.NotNil(t, logger)
	require.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestOpen_CreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "racesearch.log")

	logger, file, err := Open(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, file.Close())

	logger, file, err = Open(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=first")
	require.Contains(t, string(data), "msg=second")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, _, err := Open("  ", slog.LevelInfo)
	require.Error(t, err)
}

func TestLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, Level(true, slog.LevelWarn))
	require.Equal(t, slog.LevelWarn, Level(false, slog.LevelWarn))
}
