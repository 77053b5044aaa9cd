package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/five82/racesearch/internal/logging"
	"github.com/five82/racesearch/internal/results"
)

// QueryOptions configure a one-shot search.
type QueryOptions struct {
	Options
	JSON bool
	Out  io.Writer
	Log  io.Writer // diagnostics; nil discards
}

// Query runs a single search for term through the same tracker the TUI
// uses and prints the results to opts.Out.
func Query(ctx context.Context, term string, opts QueryOptions) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return fmt.Errorf("search term is empty")
	}

	cfg, err := LoadConfig(opts.Options)
	if err != nil {
		return err
	}
	logger := logging.New(opts.Log, logging.Level(opts.Verbose, slog.LevelWarn))

	tracker, err := newTracker(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer tracker.Close()

	call, ok := tracker.Set(term)
	if !ok {
		return fmt.Errorf("search %q was not issued", term)
	}
	done := call.Do(ctx)
	tracker.Resolve(done)
	if done.Err != nil {
		return fmt.Errorf("query: %w", done.Err)
	}

	found := tracker.Snapshot().Data
	if opts.JSON {
		return writeJSON(opts.Out, found)
	}
	return writeTable(opts.Out, found)
}

func writeJSON(w io.Writer, found []results.AthleteRaceResult) error {
	if found == nil {
		found = []results.AthleteRaceResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(found); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, found []results.AthleteRaceResult) error {
	if len(found) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tBIB\tNAME\tCLUB\tCAT\tS\tYEAR\tTIME\tGAP\tPACE\tRACE\tDATE")
	for _, r := range found {
		year := ""
		if r.Athlete.YearOfBirth > 0 {
			year = strconv.Itoa(r.Athlete.YearOfBirth)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Position,
			r.BibNumber,
			r.Athlete.FullName(),
			r.SportsClub,
			r.Category,
			r.Athlete.Gender,
			year,
			results.FormatTime(r.TimeSecs),
			results.FormatGap(r.GapSecs),
			results.FormatPace(r.PaceMinKm),
			r.Race.Name,
			r.Race.Date,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
