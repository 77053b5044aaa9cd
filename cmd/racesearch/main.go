// Package main is the entry point for the racesearch CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/racesearch/internal/app"
)

// Global flags.
var (
	configPath string
	prefsPath  string
	apiURL     string
	maxRetries int
	retryDelay int
	verbose    bool
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "racesearch: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "racesearch",
		Short: "Search athlete race results from the terminal",
		Long: `racesearch shows the latest race results and lets you search them by
athlete or race name. Searches go to the configured results API and are
retried on failure; only the newest search is ever shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), appOptions(cmd))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config file (default ~/.config/racesearch/config.toml)")
	flags.StringVar(&apiURL, "api-url", "", "Results API origin, overrides config and RACESEARCH_API_URL")
	flags.IntVar(&maxRetries, "max-retries", 0, "Retries after a failed attempt (default from config)")
	flags.IntVar(&retryDelay, "retry-delay", 0, "Milliseconds between attempts (default from config)")
	flags.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	root.Flags().StringVar(&prefsPath, "prefs", "", "Path to preferences file (default ~/.config/racesearch/prefs.toml)")

	root.AddCommand(newQueryCmd())
	root.AddCommand(newLogsCmd())
	return root
}

// appOptions collects the persistent flags. Retry flags only override the
// config when given explicitly.
func appOptions(cmd *cobra.Command) app.Options {
	opts := app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		Verbose:    verbose,
		Overrides:  app.Overrides{APIURL: apiURL},
	}
	if cmd.Flags().Changed("max-retries") {
		n := maxRetries
		opts.Overrides.MaxRetries = &n
	}
	if cmd.Flags().Changed("retry-delay") {
		d := time.Duration(retryDelay) * time.Millisecond
		opts.Overrides.RetryDelay = &d
	}
	return opts
}
