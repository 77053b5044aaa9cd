// Package state turns a changing search string into an ordered stream of
// fetch outcomes.
//
// # Overview
//
// A Machine owns the observable state of one search view: the data being
// shown, a loading flag and an error flag. The search string changes over
// time; each non-empty change issues a request, and responses may arrive in
// any order. The Machine guarantees that only the most recently issued
// request is ever observed.
//
// # Phases
//
//	           Set("")                 Set(q)
//	  ┌──────┐ ◄────────── any ─────────────► ┌─────────┐
//	  │ Idle │                                │ Pending │
//	  └──────┘                                └────┬────┘
//	   seed                  Resolve(ok) ┌─────────┴────────┐ Resolve(err)
//	                                     ▼                  ▼
//	                              ┌───────────┐      ┌────────┐
//	                              │ Succeeded │      │ Failed │
//	                              └───────────┘      └────────┘
//	                               new data           last good data
//
// Outcome values by phase:
//
//	Idle       {Data: seed,      Loading: false, Error: false}
//	Pending    {Data: last good, Loading: true,  Error: false}
//	Succeeded  {Data: response,  Loading: false, Error: false}
//	Failed     {Data: last good, Loading: false, Error: true}
//
// Clearing the search returns to the seed, even while a request is in
// flight; that request's result is dropped.
//
// # Generations
//
// Every issued Call carries the generation counter value at the time it was
// issued. Its Completion carries the same value back, and Resolve applies it
// only when it still equals the counter:
//
//	call1, _ := m.Set(url, "kip")     // generation 1
//	call2, _ := m.Set(url, "kipchoge") // generation 2
//	m.Resolve(call2.Do(ctx))           // applied
//	m.Resolve(call1.Do(ctx))           // stale, discarded
//
// Superseded calls are not aborted. They run to completion and their result
// is thrown away.
//
// # Driving a Machine
//
// Set and Resolve are split so an event loop can run the call wherever it
// likes. In a Bubble Tea program the call becomes a tea.Cmd and its
// Completion comes back as a message:
//
//	if call, ok := m.Set(url, query); ok {
//		return model, func() tea.Msg { return call.Do(ctx) }
//	}
//
// Goroutine-driven callers use Search, which runs the call on its own
// goroutine and resolves it, and observe transitions with WithOnChange.
//
// # Close
//
// Close is the unmount hook. After it runs no completion, late success or
// late failure, changes state. It is idempotent.
//
// # Concurrency
//
// All fields are guarded by one mutex. OnChange callbacks run under that
// mutex so observers see transitions in the order they were applied.
package state
