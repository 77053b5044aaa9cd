package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gogama/httpx"
	"github.com/gogama/httpx/request"
	"github.com/gogama/httpx/retry"
	"github.com/gogama/httpx/timeout"
	"github.com/google/uuid"
)

// SearchParam is the query parameter carrying the search string.
const SearchParam = "searchString"

const (
	defaultMaxRetries     = 3
	defaultDelay          = time.Second
	defaultAttemptTimeout = 10 * time.Second
	defaultUserAgent      = "racesearch/0.1"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options control the retry policy of WithRetry.
type Options struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
	// AttemptTimeout bounds a single attempt; zero disables the bound.
	AttemptTimeout time.Duration
	UserAgent      string
	Logger         *slog.Logger

	// waiter replaces the fixed Delay wait; nil uses retry.NewFixedWaiter.
	waiter retry.Waiter
}

// DefaultOptions returns 3 retries one second apart with a 10s bound per
// attempt.
func DefaultOptions() Options {
	return Options{
		MaxRetries:     defaultMaxRetries,
		Delay:          defaultDelay,
		AttemptTimeout: defaultAttemptTimeout,
		UserAgent:      defaultUserAgent,
	}
}

func (o Options) normalized() Options {
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.AttemptTimeout < 0 {
		o.AttemptTimeout = 0
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.waiter == nil {
		o.waiter = retry.NewFixedWaiter(o.Delay)
	}
	return o
}

func (o Options) timeoutPolicy() timeout.Policy {
	if o.AttemptTimeout == 0 {
		return timeout.Infinite
	}
	return timeout.Fixed(o.AttemptTimeout)
}

// WithRetry POSTs to rawURL with search attached as the searchString query
// parameter and decodes the JSON response into T. Transport failures,
// non-2xx statuses and undecodable bodies are retried up to
// opts.MaxRetries times, opts.Delay apart. The last failure is returned
// once attempts are exhausted.
func WithRetry[T any](ctx context.Context, client Doer, rawURL, search string, opts Options) (T, error) {
	var zero T
	if client == nil {
		return zero, fmt.Errorf("fetch: client is nil")
	}
	opts = opts.normalized()

	target, err := buildURL(rawURL, search)
	if err != nil {
		return zero, err
	}

	plan, err := request.NewPlanWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	if plan.Header == nil {
		plan.Header = make(http.Header)
	}
	requestID := uuid.NewString()
	plan.Header.Set("Accept", "application/json")
	plan.Header.Set("User-Agent", opts.UserAgent)
	plan.Header.Set("X-Request-ID", requestID)

	log := opts.Logger.With(
		slog.String("request_id", requestID),
		slog.String("search", search),
	)
	maxAttempts := opts.MaxRetries + 1

	// timedOut tracks whether the attempt in flight hit AttemptTimeout.
	timedOut := false
	handlers := &httpx.HandlerGroup{}
	handlers.PushBack(httpx.BeforeAttempt, httpx.HandlerFunc(func(httpx.Event, *request.Execution) {
		timedOut = false
	}))
	handlers.PushBack(httpx.AfterAttemptTimeout, httpx.HandlerFunc(func(httpx.Event, *request.Execution) {
		timedOut = true
	}))
	handlers.PushBack(httpx.AfterAttempt, httpx.HandlerFunc(func(_ httpx.Event, e *request.Execution) {
		attempt := e.Attempt + 1
		if attempt >= maxAttempts {
			return
		}
		if err := attemptErr[T](e, attempt, timedOut, opts.AttemptTimeout, nil); err != nil {
			log.Warn("attempt failed; retrying",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", maxAttempts),
				slog.Duration("delay", opts.Delay),
				slog.Any("error", err),
			)
		}
	}))

	hc := &httpx.Client{
		HTTPDoer:      client,
		TimeoutPolicy: opts.timeoutPolicy(),
		RetryPolicy: retry.NewPolicy(
			retry.Times(opts.MaxRetries).And(func(e *request.Execution) bool {
				return attemptErr[T](e, e.Attempt+1, timedOut, opts.AttemptTimeout, nil) != nil
			}),
			opts.waiter,
		),
		Handlers: handlers,
	}

	e, doErr := hc.Do(plan)
	if cerr := ctx.Err(); cerr != nil && (e == nil || doErr != nil || e.Response == nil) {
		return zero, fmt.Errorf("search %q stopped: %w", search, cerr)
	}
	if e == nil {
		return zero, fmt.Errorf("execute request: %w", doErr)
	}
	attempt := e.Attempt + 1

	var out T
	if err := attemptErr(e, attempt, timedOut, opts.AttemptTimeout, &out); err != nil {
		log.Error("request failed", slog.Int("attempts", attempt), slog.Any("error", err))
		return zero, err
	}
	if attempt > 1 {
		log.Info("request succeeded after retry", slog.Int("attempt", attempt))
	}
	return out, nil
}

// attemptErr classifies the outcome of one attempt. When out is non-nil a
// successful body is decoded into it.
func attemptErr[T any](e *request.Execution, attempt int, timedOut bool, limit time.Duration, out *T) error {
	if e.Err != nil {
		err := e.Err
		if timedOut {
			err = fmt.Errorf("no response within %s: %w", limit, context.DeadlineExceeded)
		}
		return &TransportError{Attempt: attempt, Err: err}
	}
	if e.Response == nil {
		return &TransportError{Attempt: attempt, Err: fmt.Errorf("no response")}
	}
	if status := e.StatusCode(); status < 200 || status > 299 {
		statusErr := &HTTPStatusError{StatusCode: status}
		if e.Request != nil {
			statusErr.URL = e.Request.URL.String()
		}
		return statusErr
	}
	if out == nil {
		var scratch T
		out = &scratch
	}
	if err := json.Unmarshal(e.Body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func buildURL(rawURL, search string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("parse url %q: absolute url required", rawURL)
	}
	values := u.Query()
	values.Set(SearchParam, search)
	u.RawQuery = values.Encode()
	return u.String(), nil
}
