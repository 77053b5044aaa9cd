package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAppOptions_OnlyChangedRetryFlagsOverride(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--api-url", "http://flag.example", "--retry-delay", "250"}))

	opts := appOptions(root)
	require.Equal(t, "http://flag.example", opts.Overrides.APIURL)
	require.Nil(t, opts.Overrides.MaxRetries)
	require.NotNil(t, opts.Overrides.RetryDelay)
	require.Equal(t, 250*time.Millisecond, *opts.Overrides.RetryDelay)
}

func TestLogsCommand_PrintsTail(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "racesearch.log")
	require.NoError(t, os.WriteFile(logPath, []byte("time=t level=INFO msg=a\ntime=t level=ERROR msg=b\n"), 0o644))
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_file = \""+logPath+"\"\n"), 0o600))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"logs", "--config", configPath, "--level", "error"})
	require.NoError(t, root.Execute())
	require.Equal(t, "time=t level=ERROR msg=b\n", out.String())
}

func TestQueryCommand_RequiresTerm(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"query"})
	require.Error(t, root.Execute())
}
