// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package checker

import (
	"fmt"

	"github.com/siemens/urlcheck/queue"

	"github.com/thediveo/lxkns/log"
)

// Produce reads all lines from the specified source and pushes them as URL
// jobs onto the queue, blocking whenever the queue is full. After the source
// is exhausted it pushes exactly as many termination markers as there are
// workers.
//
// The markers are always pushed, even if reading the source failed: the
// workers then still drain whatever has been queued so far and terminate
// normally. Produce returns the source error afterwards, if any.
func Produce(src LineSource, q *queue.Bounded[Job], workers int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading URLs panicked: %v", r)
		}
		// Signal end of work to every worker, whatever happened before.
		for i := 0; i < workers; i++ {
			q.Push(StopJob())
		}
		if err != nil {
			log.Errorf("URL source fault: %s", err.Error())
		}
	}()
	lines := 0
	for src.Scan() {
		q.Push(URLJob(src.Text()))
		lines++
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("cannot read URLs after %d lines: %w", lines, err)
	}
	log.Debugf("read %d URLs", lines)
	return nil
}
