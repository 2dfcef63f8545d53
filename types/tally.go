// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// Tally counts URLs per Classification. A Tally owned by a single worker needs
// no locking; see results.Aggregator for the shared one.
type Tally struct {
	Reachable     int `json:"reachable"`
	Failed        int `json:"failed"`
	Indeterminate int `json:"indeterminate"`
}

// Count increments the counter matching the specified Classification.
// Unknown classifications are counted as indeterminate.
func (t *Tally) Count(c Classification) {
	switch c {
	case Reachable:
		t.Reachable++
	case Failed:
		t.Failed++
	default:
		t.Indeterminate++
	}
}

// Add adds all counters of another Tally to this Tally.
func (t *Tally) Add(other Tally) {
	t.Reachable += other.Reachable
	t.Failed += other.Failed
	t.Indeterminate += other.Indeterminate
}

// Total returns the number of URLs counted, regardless of their
// classification.
func (t Tally) Total() int {
	return t.Reachable + t.Failed + t.Indeterminate
}
