// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package checker

import (
	"context"
	"fmt"

	"github.com/siemens/urlcheck/queue"
	"github.com/siemens/urlcheck/results"
	"github.com/siemens/urlcheck/types"

	"github.com/gammazero/workerpool"
	"github.com/thediveo/lxkns/log"
)

// DefaultQueueCapacity is the default capacity of the hand-off queue between
// the producer and the workers.
const DefaultQueueCapacity = 16

// Prober classifies a single URL, returning the detailed verdict. Probers
// must be safe for concurrent use and must not panic; nevertheless, workers
// survive panicking probers.
type Prober interface {
	Check(ctx context.Context, url string) types.Verdict
}

// Sink receives the final tally of a check run.
type Sink interface {
	Report(tally types.Tally)
}

// SinkFunc is an adapter to allow the use of ordinary functions as [Sink].
type SinkFunc func(types.Tally)

// Report calls f(tally).
func (f SinkFunc) Report(tally types.Tally) { f(tally) }

// Checker checks the reachability of URLs read from a line source, using a
// fixed number of concurrent workers.
type Checker struct {
	prober   Prober
	capacity int
	observer func(types.Verdict)
}

// Option can be passed to New when creating new Checker objects.
type Option func(*Checker)

// New returns a new Checker using the specified prober. The hand-off queue
// capacity defaults to [DefaultQueueCapacity].
func New(prober Prober, options ...Option) *Checker {
	c := &Checker{
		prober:   prober,
		capacity: DefaultQueueCapacity,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithQueueCapacity sets the capacity of the hand-off queue between the
// producer and the workers.
func WithQueueCapacity(capacity int) Option {
	if capacity < 1 {
		panic(fmt.Errorf("Checker: queue capacity must be positive, got: %d", capacity))
	}
	return func(c *Checker) {
		c.capacity = capacity
	}
}

// WithObserver registers a function that gets called with every verdict as
// soon as it has been decided. The function gets called concurrently from
// multiple workers.
func WithObserver(fn func(types.Verdict)) Option {
	return func(c *Checker) {
		c.observer = fn
	}
}

// Run reads the URLs from the specified line source and checks them using the
// specified number of workers, then hands the final tally to the sink. Run
// returns only after the producer and all workers have finished, so the tally
// reported always is complete.
//
// If reading the source fails, the URLs read so far still get checked and the
// resulting partial tally gets reported, but Run then returns the source error.
//
// The context is passed on to the probes only: when it gets cancelled, all
// remaining URLs are classified as indeterminate, but the run still drains
// all URLs from the source.
func (c *Checker) Run(ctx context.Context, src LineSource, workers int, sink Sink) error {
	if workers < 1 {
		return fmt.Errorf("number of workers must be positive, got: %d", workers)
	}
	q := queue.New[Job](c.capacity)
	agg := results.New()

	log.Debugf("checking URLs using %d workers, queue capacity %d", workers, c.capacity)
	produced := make(chan error, 1)
	go func() {
		produced <- Produce(src, q, workers)
	}()
	pool := workerpool.New(workers)
	for id := 0; id < workers; id++ {
		id := id
		pool.Submit(func() { c.worker(ctx, id, q, agg) })
	}

	// Termination barrier: the producer must have pushed all its markers and
	// every worker must have merged its tally.
	srcerr := <-produced
	pool.StopWait()

	tally := agg.Snapshot()
	log.Debugf("checked %d URLs: %d reachable, %d failed, %d indeterminate",
		tally.Total(), tally.Reachable, tally.Failed, tally.Indeterminate)
	if sink != nil {
		sink.Report(tally)
	}
	return srcerr
}
