package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/racesearch/internal/config"
	"github.com/five82/racesearch/internal/logtail"
)

// Logs prints the last lines of the configured log file at or above
// minLevel. It needs no API origin.
func Logs(opts Options, lines int, minLevel slog.Level, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tail, err := logtail.Read(cfg.LogFile, lines, minLevel)
	if err != nil {
		return err
	}
	if len(tail) == 0 {
		_, err := fmt.Fprintf(w, "no log records in %s\n", cfg.LogFile)
		return err
	}
	for _, line := range tail {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
