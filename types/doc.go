/*
Package types defines urlcheck's information model, which is rather simple and
revolves around the [Classification] of a probed URL, the detailed [Verdict] of
a single probe, and the [Tally] of classifications.

A URL is [Reachable] when the probed server answered with a status code in the
range 200..399, [Failed] when it answered with any other status code, and
[Indeterminate] when no answer could be obtained at all, for instance due to
timeouts, DNS failures, or refused connections.

# Tallies

Workers each own a private [Tally] while draining URLs and only combine it
once into the shared aggregate when they are done. As a private Tally is never
shared, it doesn't need any locking.
*/
package types
