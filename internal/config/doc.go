// Package config loads the racesearch configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/racesearch/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. RACESEARCH_API_URL, when set, replaces api_url
//
// Missing config files are not an error. A missing api_url is only reported
// by Validate, so the seed view can be inspected without an API.
//
// # TOML Format
//
//	api_url = "http://localhost:3001"
//	max_retries = 3
//	retry_delay_ms = 1000
//	request_timeout_ms = 10000
//	log_file = "~/.local/state/racesearch/racesearch.log"
//	seed_file = "~/.config/racesearch/seed.json"
//
// Every field is optional. Tilde expansion is performed on log_file and
// seed_file. A zero max_retries disables retries; negative values are
// rejected.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	client, err := api.NewClient(cfg.APIURL, api.WithRetry(cfg.Retry()))
package config
