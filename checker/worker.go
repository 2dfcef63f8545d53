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

	"github.com/thediveo/lxkns/log"
)

// worker drains URL jobs from the queue until it pops its termination marker,
// probing each URL and counting the classifications in a private tally. On its
// way out the worker merges its tally exactly once into the aggregator.
func (c *Checker) worker(ctx context.Context, id int, q *queue.Bounded[Job], agg *results.Aggregator) {
	var local types.Tally
	defer func() {
		agg.Merge(local)
		log.Debugf("worker %d done: %d reachable, %d failed, %d indeterminate",
			id, local.Reachable, local.Failed, local.Indeterminate)
	}()
	for {
		job := q.Pop()
		if job.IsStop() {
			return
		}
		verdict := c.check(ctx, id, job.URL)
		local.Count(verdict.Class)
		c.observe(id, verdict)
	}
}

// observe passes the verdict on to the observer, if any. A panicking observer
// is logged, but doesn't take its worker down with it.
func (c *Checker) observe(id int, verdict types.Verdict) {
	if c.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("worker %d: observing %s panicked: %v", id, verdict.URL, r)
		}
	}()
	c.observer(verdict)
}

// check probes a single URL. Should the prober ever panic, then this is
// logged and the URL is counted as indeterminate, so that the worker keeps
// draining the queue and the producer never blocks on a worker that is gone.
func (c *Checker) check(ctx context.Context, id int, url string) (verdict types.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("probing panicked: %v", r)
			log.Errorf("worker %d: %s: %s", id, url, err.Error())
			verdict = types.IndeterminateVerdict(url, err)
		}
	}()
	return c.prober.Check(ctx, url)
}
