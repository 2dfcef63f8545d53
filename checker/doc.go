/*
Package checker implements the concurrent URL checking pipeline: a single
producer reads URLs from a [LineSource] and pushes them onto a bounded queue,
from which a fixed number of workers pop and probe them.

	             +---+            +---+    +---+
	LineSource-->| P +--> queue ->| W +--->|   |
	             +---+     |      +---+    | A +--> Sink
	                       +----->| W +--->|   |
	                              +---+    +---+

Each worker counts the classifications of the URLs it probed in a private
tally, and only on its way out merges its tally once into the shared
aggregator (reduce-then-combine). The end of work is signalled in-band: after
the last URL the producer pushes exactly one termination marker per worker,
and each worker terminates after popping exactly one marker. The checker waits
for the producer and all workers, and only then reads the aggregate and hands
it to the [Sink].

The producer always pushes its markers, even when reading the URLs fails
midway, so that workers never starve. Workers in turn survive panicking
probers and keep draining, so that the producer never blocks on a full queue
forever. Thus, a run always terminates.

# Acknowledgements

The workers are run on a [gammazero/workerpool] sized to the number of
workers.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package checker
