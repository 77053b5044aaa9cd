// Package fetch issues one logical search request against the results API,
// retrying transient failures with a fixed delay.
//
// # Retry Policy
//
// WithRetry makes at most MaxRetries+1 attempts. Every failure class is
// retried:
//
//   - *TransportError: no response (connection refused, attempt timeout)
//   - *HTTPStatusError: response status outside 2xx
//   - *DecodeError: 2xx response whose body is not the expected JSON
//
// Attempts are separated by exactly Delay. There is no backoff, no jitter
// and no wait after the final attempt. When every attempt fails the last
// error is returned; match it with errors.As.
//
// All attempts of one call share an X-Request-ID header so server logs can
// correlate them.
//
// The attempt loop runs on a github.com/gogama/httpx client: a
// retry.Times decider joined with the failure classifier, a fixed waiter
// and a fixed per-attempt timeout policy.
//
// # Cancellation
//
// The context passed to WithRetry is the owner's lifetime, not a
// per-search cancel. Superseded searches are left to finish; callers drop
// their results instead (see package state).
package fetch
