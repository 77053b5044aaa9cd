// Package raceresults binds the search state machine to the race results
// resource.
package raceresults

import (
	"context"
	"log/slog"

	"github.com/five82/racesearch/internal/api"
	"github.com/five82/racesearch/internal/results"
	"github.com/five82/racesearch/internal/state"
)

// Outcome is what a race results view renders.
type Outcome = state.Outcome[[]results.AthleteRaceResult]

// Call is an issued race results search.
type Call = state.Call[[]results.AthleteRaceResult]

// Completion is the result of a Call.
type Completion = state.Completion[[]results.AthleteRaceResult]

// Tracker is a state.Machine fixed to the race results URL of one API
// client.
type Tracker struct {
	url     string
	machine *state.Machine[[]results.AthleteRaceResult]
}

// Option configures a Tracker.
type Option func(*trackerConfig)

type trackerConfig struct {
	logger   *slog.Logger
	onChange func(Outcome)
}

// WithLogger sets the logger for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *trackerConfig) { c.logger = logger }
}

// WithOnChange registers fn for every applied transition.
func WithOnChange(fn func(Outcome)) Option {
	return func(c *trackerConfig) { c.onChange = fn }
}

// New returns a Tracker showing seed until a search is submitted.
func New(searcher api.Searcher, seed []results.AthleteRaceResult, opts ...Option) *Tracker {
	var cfg trackerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	machineOpts := []state.Option[[]results.AthleteRaceResult]{
		state.WithLogger[[]results.AthleteRaceResult](cfg.logger),
	}
	if cfg.onChange != nil {
		machineOpts = append(machineOpts, state.WithOnChange(cfg.onChange))
	}
	return &Tracker{
		url:     searcher.RaceResultsURL(),
		machine: state.New(searcher.SearchRaceResults, seed, machineOpts...),
	}
}

// URL returns the resource URL every search is sent to.
func (t *Tracker) URL() string { return t.url }

// Set submits query. See state.Machine.Set.
func (t *Tracker) Set(query string) (Call, bool) {
	return t.machine.Set(t.url, query)
}

// Search submits query and runs the call on its own goroutine.
func (t *Tracker) Search(ctx context.Context, query string) bool {
	return t.machine.Search(ctx, t.url, query)
}

// Resolve applies a completion if it is still current.
func (t *Tracker) Resolve(c Completion) bool {
	return t.machine.Resolve(c)
}

// Snapshot returns the current outcome.
func (t *Tracker) Snapshot() Outcome {
	return t.machine.Snapshot()
}

// Query returns the last submitted query.
func (t *Tracker) Query() string {
	return t.machine.Query()
}

// Close discards every completion that arrives afterwards.
func (t *Tracker) Close() {
	t.machine.Close()
}
