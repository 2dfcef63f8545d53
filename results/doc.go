/*
Package results implements the shared [Aggregator] that workers merge their
private tallies into when they are done.

Readers are expected to call [Aggregator.Snapshot] only after all workers have
been waited for; nevertheless, each merge is atomic as a whole, so even an
early Snapshot never sees a half-merged tally.
*/
package results
