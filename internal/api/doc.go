// Package api provides an HTTP client for the race results API.
//
// # Overview
//
// The client knows one resource, race results, reachable at
// <origin>/race-results. A search is a POST with the search string in the
// searchString query parameter; the response is a JSON array of
// results.AthleteRaceResult.
//
// # Client Usage
//
//	client, err := api.NewClient("https://results.example.com")
//	if err != nil {
//		return fmt.Errorf("init api client: %w", err)
//	}
//
//	found, err := client.SearchRaceResults(ctx, client.RaceResultsURL(), "kipchoge")
//	if err != nil {
//		logger.Warn("search failed", "error", err)
//	}
//
// # URL Construction
//
// The configured origin accepts several forms:
//
//   - "localhost:3001" → http://localhost:3001/race-results
//   - "https://api.example.com/" → https://api.example.com/race-results
//   - "https://example.com/api" → https://example.com/api/race-results
//
// The scheme defaults to "http://". Query strings and fragments on the
// origin are dropped. An empty origin is a configuration error.
//
// # Retries
//
// Every search goes through fetch.WithRetry. The default policy is three
// retries one second apart with a ten second bound per attempt; override it
// with WithRetry. Errors are wrapped with the query:
//
//   - `search race results "kip": HTTP 500`
//   - `search race results "kip": attempt 4: dial tcp: connection refused`
//
// Use errors.As with *fetch.HTTPStatusError or *fetch.TransportError to
// inspect them.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package api
