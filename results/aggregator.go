// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package results

import (
	"sync"

	"github.com/siemens/urlcheck/types"
)

// Aggregator accumulates the tallies of multiple workers into a single global
// tally. An Aggregator is meant to live for a single check run only.
type Aggregator struct {
	mu     sync.Mutex
	tally  types.Tally
	merges int
}

// New returns a new and zeroed Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Merge adds all counters of the specified (worker-local) tally to the global
// tally, as a single unit.
func (a *Aggregator) Merge(local types.Tally) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tally.Add(local)
	a.merges++
}

// Snapshot returns (a copy of) the current global tally.
func (a *Aggregator) Snapshot() types.Tally {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tally
}

// Merges returns the number of tallies merged so far.
func (a *Aggregator) Merges() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.merges
}
