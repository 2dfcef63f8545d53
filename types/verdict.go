// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "time"

// Verdict is the detailed outcome of probing a single URL. Verdicts are values
// and get passed around by value, so they can be handed out to any number of
// concurrent observers without further ado.
type Verdict struct {
	URL        string         `json:"url"`
	Class      Classification `json:"class"`
	StatusCode int            `json:"status"`  // 0 if no response was received.
	Latency    time.Duration  `json:"latency"` // until the response headers arrived or the probe gave up.
	Err        error          `json:"-"`       // only for Indeterminate verdicts.
}

// IndeterminateVerdict returns a Verdict for a URL that could not be classified
// because of the specified error.
func IndeterminateVerdict(url string, err error) Verdict {
	return Verdict{
		URL:   url,
		Class: Indeterminate,
		Err:   err,
	}
}
