package state

import (
	"context"
	"log/slog"
	"sync"
)

// Phase is the position of a Machine in its fetch lifecycle.
type Phase int

const (
	// Idle shows the seed: nothing submitted, or the search was cleared.
	Idle Phase = iota
	// Pending has a request in flight for the current query.
	Pending
	// Succeeded holds the data of the latest request.
	Succeeded
	// Failed keeps the last good data after the latest request gave up.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome is the externally observed state. Loading and Error are never
// both true.
type Outcome[T any] struct {
	Data    T
	Loading bool
	Error   bool
	Phase   Phase
}

// FetchFunc performs one logical request for query against url.
type FetchFunc[T any] func(ctx context.Context, url, query string) (T, error)

// Call is a request issued by Set, tagged with the generation it belongs to.
type Call[T any] struct {
	Generation uint64
	URL        string
	Query      string

	fetch FetchFunc[T]
}

// Do runs the request. It never touches machine state; hand the result to
// Machine.Resolve.
func (c Call[T]) Do(ctx context.Context) Completion[T] {
	data, err := c.fetch(ctx, c.URL, c.Query)
	return Completion[T]{Generation: c.Generation, Query: c.Query, Data: data, Err: err}
}

// Completion is the result of a Call, carrying its generation back.
type Completion[T any] struct {
	Generation uint64
	Query      string
	Data       T
	Err        error
}

// Option configures a Machine.
type Option[T any] func(*Machine[T])

// WithLogger sets the logger used for transition and discard records.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(m *Machine[T]) {
		if logger != nil {
			m.log = logger
		}
	}
}

// WithOnChange registers fn to receive every applied transition, in order.
// fn runs outside the machine lock and may call back into it; outcomes
// raised meanwhile are delivered after fn returns.
func WithOnChange[T any](fn func(Outcome[T])) Option[T] {
	return func(m *Machine[T]) {
		m.onChange = fn
	}
}

// Machine tracks the fetch state for a changing search string. Only the
// completion of the most recently issued call may change what is observed,
// and nothing changes after Close.
type Machine[T any] struct {
	fetch    FetchFunc[T]
	log      *slog.Logger
	onChange func(Outcome[T])

	closeOnce sync.Once

	mu         sync.Mutex
	seed       T
	data       T
	phase      Phase
	url        string
	query      string
	generation uint64
	closed     bool

	pending  []Outcome[T]
	flushing bool
}

// New returns a Machine in the Idle phase showing seed.
func New[T any](fetch FetchFunc[T], seed T, opts ...Option[T]) *Machine[T] {
	m := &Machine[T]{
		fetch: fetch,
		log:   slog.New(slog.DiscardHandler),
		seed:  seed,
		data:  seed,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Set re-evaluates the machine for url and query. It returns a Call to
// run when a request must start.
//
// An empty query moves to Idle with the seed and invalidates any call in
// flight. Repeating the current url and query is a no-op unless the last
// request failed, in which case the search is issued again.
func (m *Machine[T]) Set(url, query string) (Call[T], bool) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Call[T]{}, false
	}

	if query == "" {
		changed := m.phase != Idle || m.query != ""
		m.generation++
		m.url = url
		m.query = ""
		m.phase = Idle
		m.data = m.seed
		gen := m.generation
		if changed {
			m.enqueueLocked()
		}
		m.mu.Unlock()

		if changed {
			m.flush()
			m.log.Debug("search cleared", slog.Uint64("generation", gen))
		}
		return Call[T]{}, false
	}

	if url == m.url && query == m.query && (m.phase == Pending || m.phase == Succeeded) {
		m.mu.Unlock()
		return Call[T]{}, false
	}

	m.generation++
	m.url = url
	m.query = query
	m.phase = Pending
	call := Call[T]{Generation: m.generation, URL: url, Query: query, fetch: m.fetch}
	m.enqueueLocked()
	m.mu.Unlock()
	m.flush()

	m.log.Debug("search issued",
		slog.Uint64("generation", call.Generation),
		slog.String("query", query),
	)
	return call, true
}

// Resolve applies c if it belongs to the latest call and the machine is
// still open. It reports whether the observed state changed.
func (m *Machine[T]) Resolve(c Completion[T]) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.Debug("completion after close discarded", slog.Uint64("generation", c.Generation))
		return false
	}
	if c.Generation != m.generation || m.phase != Pending {
		current := m.generation
		m.mu.Unlock()
		m.log.Debug("stale completion discarded",
			slog.Uint64("generation", c.Generation),
			slog.Uint64("current", current),
			slog.String("query", c.Query),
		)
		return false
	}

	if c.Err != nil {
		m.phase = Failed
	} else {
		m.phase = Succeeded
		m.data = c.Data
	}
	m.enqueueLocked()
	m.mu.Unlock()
	m.flush()

	if c.Err != nil {
		m.log.Warn("search failed", slog.String("query", c.Query), slog.Any("error", c.Err))
	} else {
		m.log.Debug("search succeeded", slog.String("query", c.Query))
	}
	return true
}

// Search calls Set and, when a request is due, runs it on a new goroutine
// and resolves it. The goroutine is not cancelled when the call is
// superseded; its result is discarded instead.
func (m *Machine[T]) Search(ctx context.Context, url, query string) bool {
	call, ok := m.Set(url, query)
	if !ok {
		return false
	}
	go func() {
		m.Resolve(call.Do(ctx))
	}()
	return true
}

// Close stops the machine from accepting further transitions. It is safe
// to call more than once.
func (m *Machine[T]) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		m.log.Debug("state machine closed")
	})
}

// Closed reports whether Close has run.
func (m *Machine[T]) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Snapshot returns the current outcome.
func (m *Machine[T]) Snapshot() Outcome[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomeLocked()
}

// Query returns the query of the latest Set.
func (m *Machine[T]) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Generation returns the current generation token.
func (m *Machine[T]) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

func (m *Machine[T]) outcomeLocked() Outcome[T] {
	return Outcome[T]{
		Data:    m.data,
		Loading: m.phase == Pending,
		Error:   m.phase == Failed,
		Phase:   m.phase,
	}
}

// enqueueLocked records the current outcome for delivery by flush.
func (m *Machine[T]) enqueueLocked() {
	if m.onChange != nil {
		m.pending = append(m.pending, m.outcomeLocked())
	}
}

// flush delivers queued outcomes in order without holding mu. A single
// goroutine delivers at a time; others leave their outcomes to it.
func (m *Machine[T]) flush() {
	if m.onChange == nil {
		return
	}
	m.mu.Lock()
	if m.flushing {
		m.mu.Unlock()
		return
	}
	m.flushing = true
	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		for _, o := range batch {
			m.onChange(o)
		}
		m.mu.Lock()
	}
	m.flushing = false
	m.mu.Unlock()
}
