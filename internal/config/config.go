package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/racesearch/internal/fetch"
)

// Config captures everything racesearch reads from its config file.
type Config struct {
	APIURL         string
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	LogFile        string
	SeedFile       string
}

// APIURLEnv overrides api_url from the config file.
const APIURLEnv = "RACESEARCH_API_URL"

const (
	defaultConfigPath     = "~/.config/racesearch/config.toml"
	defaultLogFile        = "~/.local/state/racesearch/racesearch.log"
	defaultMaxRetries     = 3
	defaultRetryDelay     = time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MaxRetries:     defaultMaxRetries,
		RetryDelay:     defaultRetryDelay,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config, falling back to defaults when the
// file is missing. RACESEARCH_API_URL, when set, wins over api_url.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL           string `toml:"api_url"`
		MaxRetries       *int   `toml:"max_retries"`
		RetryDelayMS     *int64 `toml:"retry_delay_ms"`
		RequestTimeoutMS *int64 `toml:"request_timeout_ms"`
		LogFile          string `toml:"log_file"`
		SeedFile         string `toml:"seed_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	if raw.MaxRetries != nil {
		cfg.MaxRetries = *raw.MaxRetries
	}
	if raw.RetryDelayMS != nil {
		cfg.RetryDelay = time.Duration(*raw.RetryDelayMS) * time.Millisecond
	}
	if raw.RequestTimeoutMS != nil {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutMS) * time.Millisecond
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if seedFile := strings.TrimSpace(raw.SeedFile); seedFile != "" {
		cfg.SeedFile = mustExpand(seedFile)
	}
	applyEnv(&cfg)

	if err := cfg.validateNumbers(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot run: a missing API origin or
// negative retry settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is not set (config file or %s)", APIURLEnv)
	}
	return c.validateNumbers()
}

// Retry returns the fetch retry policy described by c.
func (c Config) Retry() fetch.Options {
	opts := fetch.DefaultOptions()
	opts.MaxRetries = c.MaxRetries
	opts.Delay = c.RetryDelay
	opts.AttemptTimeout = c.RequestTimeout
	return opts
}

func (c Config) validateNumbers() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay_ms must be >= 0, got %d", c.RetryDelay.Milliseconds())
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_ms must be >= 0, got %d", c.RequestTimeout.Milliseconds())
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
