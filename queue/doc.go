/*
Package queue implements a bounded, blocking FIFO hand-off queue between a
producer and any number of consumers.

	            +--------------+
	Push(T) --->|  cap slots   |---> Pop() T
	            +--------------+

Push blocks while the queue is full, so a producer cannot run arbitrarily far
ahead of its consumers (backpressure). Pop blocks while the queue is empty.
There is deliberately no Close: end of work is signalled in-band by the items
themselves, so there is never an item in flight racing a closed queue.
*/
package queue
