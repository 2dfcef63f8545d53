// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Classification indicates the outcome of probing a single URL, such as
// reachable, failed, et cetera.
type Classification int

// The classifications of a probed URL.
const (
	Indeterminate Classification = iota // probe could not complete.
	Failed                              // response received, but not 2xx/3xx.
	Reachable                           // response received with status 200..399.
)

// String returns the clear-text representation of a Classification value.
func (c Classification) String() string {
	switch c {
	case Reachable:
		return "reachable"
	case Failed:
		return "failed"
	case Indeterminate:
		return "indeterminate"
	}
	return fmt.Sprintf("Classification(%d)", c)
}

// Classify returns the classification for an HTTP response status code that
// was actually received.
func Classify(statusCode int) Classification {
	if statusCode >= 200 && statusCode < 400 {
		return Reachable
	}
	return Failed
}
