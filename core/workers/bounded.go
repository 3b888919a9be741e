// ABOUTME: Bounded parallel resolve runs independent probes against one shared deadline
// ABOUTME: Returns per-item completion state instead of an all-or-nothing result

package workers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProbeState is the completion state of a single probe
type ProbeState int

const (
	// StatePending means the probe had not finished when the deadline hit
	StatePending ProbeState = iota
	// StateSucceeded means the probe returned without error
	StateSucceeded
	// StateFailed means the probe returned an error
	StateFailed
)

// String returns a readable name for logs
func (s ProbeState) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Result is the outcome of one probe
type Result[T any] struct {
	State ProbeState
	Value T
	Err   error
}

// Outcome is the snapshot returned by ResolveAll
type Outcome[T any] struct {
	Results []Result[T]

	// TimedOut is true when the deadline won the race
	TimedOut bool
}

// Pending counts results still pending in the snapshot
func (o Outcome[T]) Pending() int {
	n := 0
	for _, r := range o.Results {
		if r.State == StatePending {
			n++
		}
	}
	return n
}

// ResolveOptions tunes ResolveAll
type ResolveOptions struct {
	// Deadline bounds the whole batch; zero waits for every probe
	Deadline time.Duration

	// Limit caps concurrent probes; zero or less runs all at once
	Limit int
}

// ResolveAll runs probe for indexes 0..n-1 concurrently and returns once
// every probe has finished or the deadline elapses, whichever comes first.
//
// The returned snapshot is never written to after ResolveAll returns:
// probes that finish late are discarded, and their context is cancelled so
// they can stop early.
func ResolveAll[T any](ctx context.Context, n int, opts ResolveOptions, probe func(ctx context.Context, i int) (T, error)) Outcome[T] {
	outcome := Outcome[T]{Results: make([]Result[T], n)}
	if n == 0 {
		return outcome
	}

	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		sealed bool
	)
	record := func(i int, v T, err error) {
		mu.Lock()
		defer mu.Unlock()
		if sealed {
			return
		}
		if err != nil {
			outcome.Results[i] = Result[T]{State: StateFailed, Value: v, Err: err}
			return
		}
		outcome.Results[i] = Result[T]{State: StateSucceeded, Value: v}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		var g errgroup.Group
		if opts.Limit > 0 {
			g.SetLimit(opts.Limit)
		}
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if probeCtx.Err() != nil {
					return nil
				}
				v, err := probe(probeCtx, i)
				record(i, v, err)
				return nil // errors are reported per item
			})
		}
		_ = g.Wait()
	}()

	var timeout <-chan time.Time
	if opts.Deadline > 0 {
		timer := time.NewTimer(opts.Deadline)
		defer timer.Stop()
		timeout = timer.C
	}

	timedOut := false
	select {
	case <-done:
	case <-timeout:
		timedOut = true
	case <-ctx.Done():
		timedOut = true
	}
	if timedOut {
		// all probes may have landed in the same instant
		select {
		case <-done:
			timedOut = false
		default:
		}
	}

	mu.Lock()
	sealed = true
	snapshot := Outcome[T]{
		Results:  make([]Result[T], n),
		TimedOut: timedOut,
	}
	copy(snapshot.Results, outcome.Results)
	mu.Unlock()

	return snapshot
}
