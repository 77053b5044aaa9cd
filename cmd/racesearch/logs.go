package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/racesearch/internal/app"
)

func newLogsCmd() *cobra.Command {
	var (
		tail  int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the racesearch log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var minLevel slog.Level
			if err := minLevel.UnmarshalText([]byte(level)); err != nil {
				return fmt.Errorf("invalid --level %q: %w", level, err)
			}
			return app.Logs(appOptions(cmd), tail, minLevel, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "Minimum level: debug, info, warn or error")
	return cmd
}
