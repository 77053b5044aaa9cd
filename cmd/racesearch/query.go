package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/racesearch/internal/app"
)

func newQueryCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query <term...>",
		Short: "Run one search and print the results",
		Example: `  racesearch query kipchoge
  racesearch query --json "Haile & Bekele"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Query(cmd.Context(), strings.Join(args, " "), app.QueryOptions{
				Options: appOptions(cmd),
				JSON:    asJSON,
				Out:     cmd.OutOrStdout(),
				Log:     cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
