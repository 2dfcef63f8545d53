// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package checker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/siemens/urlcheck/probe"
	"github.com/siemens/urlcheck/queue"
	"github.com/siemens/urlcheck/results"
	"github.com/siemens/urlcheck/test"
	"github.com/siemens/urlcheck/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

// collector is a Sink remembering all reported tallies.
type collector struct {
	mu      sync.Mutex
	tallies []types.Tally
}

func (c *collector) Report(t types.Tally) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tallies = append(c.tallies, t)
}

var _ = Describe("checker", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("rejects invalid configurations", func(ctx context.Context) {
		Expect(func() { WithQueueCapacity(0) }).To(Panic())
		c := New(&fakeProber{})
		Expect(c.capacity).To(Equal(DefaultQueueCapacity))
		Expect(c.Run(ctx, lines("ok"), 0, nil)).To(MatchError(ContainSubstring("must be positive")))
	})

	It("runs workers that each consume exactly one marker and merge exactly once", func(ctx context.Context) {
		const workers = 5
		input := append(urls("ok", 7), urls("missing", 4)...)
		q := queue.New[Job](len(input) + workers)
		for _, url := range input {
			q.Push(URLJob(url))
		}
		for i := 0; i < workers; i++ {
			q.Push(StopJob())
		}
		agg := results.New()
		c := New(&fakeProber{})
		var wg sync.WaitGroup
		for id := 0; id < workers; id++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				c.worker(ctx, id, q, agg)
			}(id)
		}
		wg.Wait()
		Expect(q.Len()).To(BeZero(), "markers left unconsumed")
		Expect(agg.Merges()).To(Equal(workers))
		Expect(agg.Snapshot()).To(Equal(types.Tally{Reachable: 7, Failed: 4}))
	})

	DescribeTable("counts every URL exactly once",
		func(ctx context.Context, workers int, n int) {
			input := append(append(urls("ok", n), urls("missing", n)...), urls("unknown", n)...)
			sink := &collector{}
			Expect(New(&fakeProber{}, WithQueueCapacity(3)).
				Run(ctx, lines(input...), workers, sink)).To(Succeed())
			Expect(sink.tallies).To(ConsistOf(types.Tally{Reachable: n, Failed: n, Indeterminate: n}))
		},
		Entry(nil, 1, 0),
		Entry(nil, 1, 10),
		Entry(nil, 2, 1),
		Entry(nil, 3, 33),
		Entry(nil, 10, 100),
		Entry(nil, 20, 2),
	)

	It("keeps checking when probing panics", func(ctx context.Context) {
		var tally types.Tally
		Expect(New(&fakeProber{}).Run(ctx,
			lines("ok", "panic", "missing", "panic", "ok"), 2,
			SinkFunc(func(t types.Tally) { tally = t }))).To(Succeed())
		Expect(tally).To(Equal(types.Tally{Reachable: 2, Failed: 1, Indeterminate: 2}))
	})

	It("reports what has been checked before a source fault", func(ctx context.Context) {
		srcerr := errors.New("disk on fire")
		var tally types.Tally
		err := New(&fakeProber{}).Run(ctx,
			&faultySource{lines: []string{"ok", "missing", "ok"}, err: srcerr}, 4,
			SinkFunc(func(t types.Tally) { tally = t }))
		Expect(err).To(MatchError(srcerr))
		Expect(tally).To(Equal(types.Tally{Reachable: 2, Failed: 1}))
	})

	It("tells observers about every verdict", func(ctx context.Context) {
		var mu sync.Mutex
		seen := map[string]types.Classification{}
		Expect(New(&fakeProber{}, WithObserver(func(v types.Verdict) {
			mu.Lock()
			defer mu.Unlock()
			seen[v.URL] = v.Class
		})).Run(ctx, lines("ok", "missing", "foo"), 3, nil)).To(Succeed())
		Expect(seen).To(Equal(map[string]types.Classification{
			"ok":      types.Reachable,
			"missing": types.Failed,
			"foo":     types.Indeterminate,
		}))
	})

	It("keeps checking when an observer panics", func(ctx context.Context) {
		var tally types.Tally
		Expect(New(&fakeProber{}, WithObserver(func(v types.Verdict) {
			if v.Class == types.Failed {
				panic("D'oh!")
			}
		})).Run(ctx, lines("ok", "missing", "ok", "missing", "foo"), 2,
			SinkFunc(func(t types.Tally) { tally = t }))).To(Succeed())
		Expect(tally).To(Equal(types.Tally{Reachable: 2, Failed: 2, Indeterminate: 1}))
	})

	It("runs workers concurrently", func(ctx context.Context) {
		p := &fakeProber{delay: 200 * time.Millisecond}
		start := time.Now()
		Expect(New(p).Run(ctx, lines(urls("ok", 10)...), 10, nil)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", 1500*time.Millisecond))
		Expect(p.probes.Load()).To(Equal(int64(10)))
	})

	When("probing real HTTP servers", func() {

		var targets *test.Targets
		var prober *probe.Prober

		BeforeEach(func() {
			targets = test.NewTargets()
			prober = probe.New(
				probe.WithConnectTimeout(500*time.Millisecond),
				probe.WithReadTimeout(500*time.Millisecond))
			DeferCleanup(func() {
				prober.Close()
				targets.Close()
			})
		})

		It("classifies a reachable, a missing, and a hanging URL", NodeTimeout(20*time.Second), func(ctx context.Context) {
			sink := &collector{}
			Expect(New(prober).Run(ctx,
				lines(targets.OK.URL, targets.Missing.URL, targets.Hang.URL), 2, sink)).
				To(Succeed())
			Expect(sink.tallies).To(ConsistOf(types.Tally{Reachable: 1, Failed: 1, Indeterminate: 1}))
		})

		It("terminates on empty input", NodeTimeout(20*time.Second), func(ctx context.Context) {
			sink := &collector{}
			Expect(New(prober).Run(ctx, lines(), 3, sink)).To(Succeed())
			Expect(sink.tallies).To(ConsistOf(types.Tally{}))
		})

		DescribeTable("yields the same tally regardless of the number of workers",
			func(ctx context.Context, workers int) {
				input := make([]string, 100)
				for i := range input {
					input[i] = targets.OK.URL
				}
				sink := &collector{}
				Expect(New(prober).Run(ctx, lines(input...), workers, sink)).To(Succeed())
				Expect(sink.tallies).To(ConsistOf(types.Tally{Reachable: 100}))
			},
			Entry("one worker", NodeTimeout(30*time.Second), 1),
			Entry("ten workers", NodeTimeout(30*time.Second), 10),
		)

	})

})
