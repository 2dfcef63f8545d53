// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/siemens/urlcheck/checker"
	"github.com/siemens/urlcheck/config"
	"github.com/siemens/urlcheck/container"
	"github.com/siemens/urlcheck/metrics"
	"github.com/siemens/urlcheck/probe"
	"github.com/siemens/urlcheck/resolver"
	"github.com/siemens/urlcheck/types"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/log"
	"golang.org/x/time/rate"
)

// CheckAndReport checks the URLs listed in the named file using the specified
// number of workers and finally writes a summary of the outcome to out. If
// enabled, live progress gets rendered to progressOut while checking.
func CheckAndReport(
	ctx context.Context,
	cfg *config.Config,
	filename string,
	workers int,
	out io.Writer,
	progressOut io.Writer,
) error {
	// Locate the network namespace to probe from, if any.
	netnsref := cfg.Netns
	if cfg.Container != "" {
		cln, err := container.NewClient("")
		if err != nil {
			return err
		}
		defer cln.Close()
		netnsref, err = container.NetworkNamespace(ctx, cln, cfg.Container)
		if err != nil {
			return err
		}
	}

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - optional DNS resolver pool, dialed in the probing network namespace.
	//   - Prober classifying individual URLs.
	//   - metrics recorder and progress counters observing the verdicts.
	//   - Checker feeding the URLs from the file to the workers.
	popts := []probe.Option{
		probe.WithConnectTimeout(cfg.ConnectTimeout),
		probe.WithReadTimeout(cfg.ReadTimeout),
		probe.WithUserAgent(cfg.UserAgent),
		probe.InNetworkNamespace(netnsref),
	}
	if cfg.Resolver != "" {
		pool, err := resolver.New(ctx, workers,
			&dns.Client{Timeout: cfg.ConnectTimeout}, cfg.Resolver,
			resolver.InNetworkNamespace(netnsref))
		if err != nil {
			return err
		}
		defer pool.StopWait()
		popts = append(popts, probe.WithResolver(pool))
	}
	if cfg.Rate > 0 {
		popts = append(popts, probe.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.Rate), 1)))
	}
	prober := probe.New(popts...)
	defer prober.Close()

	rec := metrics.New()
	rec.SetRunParameters(workers, cfg.QueueCapacity)
	counts := &progress{}
	observer := func(v types.Verdict) {
		rec.Observe(v)
		counts.Observe(v)
	}

	// Fire off the rendering goroutine, if asked for. It renders until the
	// final tally is about to be reported, so that the live progress display
	// and the summary never get intermingled.
	stopRendering := func() {}
	if cfg.Progress {
		renderingDone := make(chan struct{})
		trackingDone := make(chan struct{})
		go func() {
			term := uilive.New()
			term.Out = progressOut
			renderer := newRenderer(term, filename)
			defer func() {
				renderData(term, renderer, counts)
				close(renderingDone)
			}()
			renderData(term, renderer, counts)
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					renderData(term, renderer, counts)
				case <-trackingDone:
					return
				}
			}
		}()
		var once sync.Once
		stopRendering = func() {
			once.Do(func() {
				close(trackingDone)
				<-renderingDone
			})
		}
		defer stopRendering()
	}

	summary := newSummary(out)
	chk := checker.New(prober,
		checker.WithQueueCapacity(cfg.QueueCapacity),
		checker.WithObserver(observer))
	log.Debugf("checking URLs from %s using %d workers", filename, workers)
	err := chk.Run(ctx, checker.NewFileSource(filename), workers,
		checker.SinkFunc(func(tally types.Tally) {
			stopRendering()
			summary.Report(tally)
		}))

	if cfg.MetricsFile != "" {
		if merr := rec.WriteTextfile(cfg.MetricsFile); merr != nil {
			merr = fmt.Errorf("cannot write metrics file: %w", merr)
			log.Errorf("%s", merr.Error())
			if err == nil {
				err = merr
			}
		}
	}
	return err
}

// renderData gets the current progress counts and then renders (and flushes)
// them to the terminal.
func renderData(term *uilive.Writer, r *renderer, counts *progress) {
	r.Render(counts.Get())
	_ = term.Flush()
}
