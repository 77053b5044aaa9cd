package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/racesearch/internal/api"
	"github.com/five82/racesearch/internal/config"
	"github.com/five82/racesearch/internal/logging"
	"github.com/five82/racesearch/internal/prefs"
	"github.com/five82/racesearch/internal/raceresults"
	"github.com/five82/racesearch/internal/results"
	"github.com/five82/racesearch/internal/ui"
)

// Options configure the racesearch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/racesearch/prefs.toml
	Verbose    bool
	Overrides  Overrides
}

// Overrides carry command-line values that win over the config file.
// Nil or empty fields leave the loaded value alone.
type Overrides struct {
	APIURL     string
	MaxRetries *int
	RetryDelay *time.Duration
}

func (o Overrides) apply(cfg *config.Config) {
	if v := strings.TrimSpace(o.APIURL); v != "" {
		cfg.APIURL = v
	}
	if o.MaxRetries != nil {
		cfg.MaxRetries = *o.MaxRetries
	}
	if o.RetryDelay != nil {
		cfg.RetryDelay = *o.RetryDelay
	}
}

// LoadConfig reads the config file, applies overrides and validates the
// result.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	opts.Overrides.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newTracker builds the API client and binds a tracker to it.
func newTracker(cfg config.Config, seed []results.AthleteRaceResult, logger *slog.Logger) (*raceresults.Tracker, error) {
	client, err := api.NewClient(cfg.APIURL,
		api.WithRetry(cfg.Retry()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	logger.Info("api client ready", "api_url", client.BaseURL(), "max_retries", cfg.MaxRetries)
	return raceresults.New(client, seed, raceresults.WithLogger(logger)), nil
}

// Run boots the racesearch TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, logFile, err := logging.Open(cfg.LogFile, logging.Level(opts.Verbose, slog.LevelInfo))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("load preferences failed", "path", prefsPath, "error", err)
	}

	seed, err := results.LoadSeed(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	tracker, err := newTracker(cfg, seed, logger)
	if err != nil {
		return err
	}
	defer tracker.Close()

	logger.Info("racesearch starting",
		"url", tracker.URL(),
		"max_retries", cfg.MaxRetries,
		"retry_delay", cfg.RetryDelay,
		"seed_records", len(seed),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Tracker:   tracker,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info("racesearch interrupted", "cause", context.Cause(ctx))
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("racesearch stopped")
	return nil
}
