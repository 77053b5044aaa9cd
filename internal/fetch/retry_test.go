package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogama/httpx/request"
	"github.com/stretchr/testify/require"
)

type runner struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// recordingWaiter counts waits without blocking.
type recordingWaiter struct {
	mu     sync.Mutex
	delay  time.Duration
	delays []time.Duration
}

func (r *recordingWaiter) Wait(*request.Execution) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, r.delay)
	return 0
}

func (r *recordingWaiter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delays)
}

// scriptedDoer replays a fixed sequence of responses or errors.
type scriptedDoer struct {
	mu    sync.Mutex
	steps []func(*http.Request) (*http.Response, error)
	reqs  []*http.Request
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reqs = append(d.reqs, req)
	idx := len(d.reqs) - 1
	if idx >= len(d.steps) {
		idx = len(d.steps) - 1
	}
	return d.steps[idx](req)
}

func (d *scriptedDoer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.reqs)
}

func jsonResponse(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		rec.Header().Set("Content-Type", "application/json")
		rec.WriteHeader(status)
		_, _ = rec.WriteString(body)
		resp := rec.Result()
		resp.Request = req
		return resp, nil
	}
}

func transportFailure(msg string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return nil, errors.New(msg)
	}
}

func testOptions(maxRetries int, delay time.Duration, s *recordingWaiter) Options {
	opts := DefaultOptions()
	opts.MaxRetries = maxRetries
	opts.Delay = delay
	s.delay = delay
	opts.waiter = s
	return opts
}

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusOK, `{"id":1,"firstName":"Eliud","lastName":"Kipchoge"}`),
	}}
	s := &recordingWaiter{}

	got, err := WithRetry[runner](context.Background(), doer, "https://api.test", "kipchoge", testOptions(2, 10*time.Millisecond, s))
	require.NoError(t, err)
	require.Equal(t, runner{ID: 1, FirstName: "Eliud", LastName: "Kipchoge"}, got)
	require.Equal(t, 1, doer.calls())
	require.Zero(t, s.count(), "no wait follows a successful attempt")
}

func TestWithRetry_SucceedsOnSecondAttempt(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		transportFailure("Network error"),
		jsonResponse(http.StatusOK, `{"id":2,"firstName":"Haile","lastName":"Gebrselassie"}`),
	}}
	s := &recordingWaiter{}

	got, err := WithRetry[runner](context.Background(), doer, "https://api.test", "kipchoge", testOptions(2, 10*time.Millisecond, s))
	require.NoError(t, err)
	require.Equal(t, "Gebrselassie", got.LastName)
	require.Equal(t, 2, doer.calls())
	require.Equal(t, []time.Duration{10 * time.Millisecond}, s.delays)
}

func TestWithRetry_ExhaustsTransportFailures(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		transportFailure("Permanent failure"),
	}}
	s := &recordingWaiter{}

	_, err := WithRetry[runner](context.Background(), doer, "https://api.test", "kipchoge", testOptions(2, 5*time.Millisecond, s))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Permanent failure")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, 3, transportErr.Attempt, "the last failure is propagated")
	require.Equal(t, 3, doer.calls())
	require.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond}, s.delays)
}

func TestWithRetry_RetriesNonOKStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	s := &recordingWaiter{}
	_, err := WithRetry[[]runner](context.Background(), server.Client(), server.URL, "kipchoge", testOptions(1, 5*time.Millisecond, s))
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP 500")

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, 1, s.count())
}

func TestWithRetry_ZeroRetriesFailsImmediately(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusServiceUnavailable, ``),
	}}
	s := &recordingWaiter{}

	_, err := WithRetry[runner](context.Background(), doer, "https://api.test", "x", testOptions(0, time.Second, s))
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 1, doer.calls())
	require.Zero(t, s.count())
}

func TestWithRetry_EncodesSearchStringAndPosts(t *testing.T) {
	t.Parallel()

	var (
		mu         sync.Mutex
		gotSearch  string
		gotMethod  string
		gotAgent   string
		gotAccept  string
		gotRawPath string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotSearch = r.URL.Query().Get(SearchParam)
		gotMethod = r.Method
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotRawPath = r.URL.Path
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	s := &recordingWaiter{}
	_, err := WithRetry[[]runner](context.Background(), server.Client(), server.URL+"/race-results", "Haile & Bekele", testOptions(0, 5*time.Millisecond, s))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "Haile & Bekele", gotSearch)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/race-results", gotRawPath)
	require.True(t, strings.HasPrefix(gotAgent, "racesearch/"), "User-Agent = %q", gotAgent)
	require.Equal(t, "application/json", gotAccept)
}

func TestWithRetry_KeepsRequestIDAcrossAttempts(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusBadGateway, ``),
		jsonResponse(http.StatusOK, `{"id":3}`),
	}}
	s := &recordingWaiter{}

	_, err := WithRetry[runner](context.Background(), doer, "https://api.test/race-results?lang=it", "kip", testOptions(1, 0, s))
	require.NoError(t, err)
	require.Len(t, doer.reqs, 2)

	first := doer.reqs[0].Header.Get("X-Request-ID")
	require.NotEmpty(t, first)
	require.Equal(t, first, doer.reqs[1].Header.Get("X-Request-ID"))
	require.Equal(t, doer.reqs[0].URL.String(), doer.reqs[1].URL.String(), "retries re-issue the identical request")
	require.Equal(t, "it", doer.reqs[0].URL.Query().Get("lang"), "existing query parameters survive")
}

func TestWithRetry_DecodeFailureIsRetried(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusOK, `{not-json`),
		jsonResponse(http.StatusOK, `{"id":4}`),
	}}
	s := &recordingWaiter{}

	got, err := WithRetry[runner](context.Background(), doer, "https://api.test", "kip", testOptions(1, 0, s))
	require.NoError(t, err)
	require.Equal(t, 4, got.ID)

	doer = &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusOK, `{not-json`),
	}}
	_, err = WithRetry[runner](context.Background(), doer, "https://api.test", "kip", testOptions(0, 0, s))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestWithRetry_ContextDoneStopsWaiting(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{steps: []func(*http.Request) (*http.Response, error){
		transportFailure("refused"),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.MaxRetries = 3
	opts.Delay = time.Hour

	_, err := WithRetry[runner](ctx, doer, "https://api.test", "kip", opts)
	require.ErrorIs(t, err, context.Canceled)
	require.LessOrEqual(t, doer.calls(), 1)
}

func TestWithRetry_AttemptTimeoutBoundsEachAttempt(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	opts := DefaultOptions()
	opts.MaxRetries = 1
	opts.Delay = 0
	opts.AttemptTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err := WithRetry[[]runner](context.Background(), server.Client(), server.URL, "kip", opts)
	elapsed := time.Since(start)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, 2, transportErr.Attempt)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.EqualValues(t, 2, calls.Load())
	require.Less(t, elapsed, 5*time.Second, "each attempt is cut off at AttemptTimeout")
}

func TestWithRetry_RejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := WithRetry[runner](context.Background(), nil, "https://api.test", "kip", DefaultOptions())
	require.Error(t, err)

	_, err = WithRetry[runner](context.Background(), http.DefaultClient, "/race-results", "kip", DefaultOptions())
	require.ErrorContains(t, err, "absolute url required")
}

func TestOptions_NormalizesNegatives(t *testing.T) {
	opts := Options{MaxRetries: -1, Delay: -time.Second, AttemptTimeout: -time.Second}.normalized()
	require.Zero(t, opts.MaxRetries)
	require.Zero(t, opts.Delay)
	require.Zero(t, opts.AttemptTimeout)
	require.NotNil(t, opts.Logger)
	require.NotNil(t, opts.waiter)
	require.Equal(t, defaultUserAgent, opts.UserAgent)
}
