// Package app wires the racesearch components together.
//
// Run is the composition root for the TUI: it loads and validates the
// config, opens the log file, loads preferences and the seed, builds the API
// client and race results tracker, and hands them to the ui package. The
// tracker is closed when the UI exits, so responses arriving after quit are
// dropped.
//
// Query runs one search through the same tracker and prints a table or JSON.
// Logs prints the tail of the log file the TUI writes to.
//
// Command-line values reach the config through Overrides, applied after the
// file and RACESEARCH_API_URL:
//
//	flag > RACESEARCH_API_URL > config.toml > defaults
package app
