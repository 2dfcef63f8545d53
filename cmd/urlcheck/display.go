// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/siemens/urlcheck/checker"
	"github.com/siemens/urlcheck/types"

	"github.com/muesli/termenv"
)

// progress counts the verdicts of a run while it is still in progress.
type progress struct {
	reachable     atomic.Int64
	failed        atomic.Int64
	indeterminate atomic.Int64
}

// Observe counts the specified verdict. Observe is safe for concurrent use.
func (p *progress) Observe(v types.Verdict) {
	switch v.Class {
	case types.Reachable:
		p.reachable.Add(1)
	case types.Failed:
		p.failed.Add(1)
	default:
		p.indeterminate.Add(1)
	}
}

// Get returns the current counts. As the counts are individually updated,
// they might be slightly off during a run, but that's fine for display.
func (p *progress) Get() types.Tally {
	return types.Tally{
		Reachable:     int(p.reachable.Load()),
		Failed:        int(p.failed.Load()),
		Indeterminate: int(p.indeterminate.Load()),
	}
}

// renderer renders the live progress display, based on the counts passed to
// its Render method.
type renderer struct {
	source  string
	w       io.Writer
	out     *termenv.Output
	spinner *spinner
}

// newRenderer returns a renderer rendering to the specified io.Writer. source
// names where the URLs come from.
func newRenderer(w io.Writer, source string) *renderer {
	return &renderer{
		source:  source,
		w:       w,
		out:     termenv.NewOutput(w),
		spinner: newSpinner(100 * time.Millisecond),
	}
}

// Render the given (intermediate) tally.
func (r *renderer) Render(t types.Tally) {
	fmt.Fprintf(r.w, "%schecking URLs from %s: %d checked\n",
		r.out.String(r.spinner.Spinner()).Foreground(checkingColor),
		r.source, t.Total())
	fmt.Fprintf(r.w, "   %s\n", styledTally(r.out, t))
}

// summary is a sink writing the final tally in the form of "n OK, n Error, n
// Unknown", colored only when writing to a terminal.
type summary struct {
	w   io.Writer
	out *termenv.Output
}

var _ checker.Sink = (*summary)(nil)

func newSummary(w io.Writer) *summary {
	return &summary{w: w, out: termenv.NewOutput(w)}
}

// Report writes the final tally.
func (s *summary) Report(t types.Tally) {
	fmt.Fprintln(s.w, styledTally(s.out, t))
}

func styledTally(out *termenv.Output, t types.Tally) string {
	return fmt.Sprintf("%s, %s, %s",
		out.String(fmt.Sprintf("%d OK", t.Reachable)).Foreground(reachableColor),
		out.String(fmt.Sprintf("%d Error", t.Failed)).Foreground(failedColor),
		out.String(fmt.Sprintf("%d Unknown", t.Indeterminate)).Foreground(indeterminateColor))
}
