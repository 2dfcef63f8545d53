// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/siemens/urlcheck/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

var _ = Describe("DNS client connection pool", func() {

	var dnssrv *test.DNSServer

	BeforeEach(func() {
		goodgos := Goroutines()
		dnssrv = Successful(test.NewDNSServer(map[string][]string{
			"foo.example": {"127.0.0.1", "::1"},
			"bar.example": {"127.0.0.2"},
		}))
		DeferCleanup(func() {
			dnssrv.Close()
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("rejects invalid pool sizes", func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp"}
		Expect(New(ctx, 0, &dnsclnt, dnssrv.Addr)).Error().To(HaveOccurred())
	})

	It("fails when the DNS server cannot be dialed", NodeTimeout(10*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "tcp", DialTimeout: time.Second}
		Expect(New(ctx, 2, &dnsclnt, "127.0.0.1:1")).Error().To(
			MatchError(ContainSubstring("cannot dial DNS resolver 127.0.0.1:1")))
	})

	It("runs a goroutine-limited set of DNS tasks", NodeTimeout(30*time.Second), func(ctx context.Context) {
		const poolsize = 3

		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(ctx, poolsize, &dnsclnt, dnssrv.Addr))

		dnsconns := map[*dns.Conn]int{}
		var mu sync.Mutex
		taskfn := func(conn *dns.Conn) {
			mu.Lock()
			defer mu.Unlock()
			dnsconns[conn]++
			time.Sleep(50 * time.Millisecond)
		}

		numtasks := poolsize * 2
		for i := 0; i < numtasks; i++ {
			pool.Submit(taskfn)
		}
		pool.StopWait()

		total := 0
		for _, count := range dnsconns {
			total += count
		}
		Expect(total).To(Equal(numtasks), "number of submitted and executed tasks mismatch")
		Expect(len(dnsconns)).To(BeNumerically("<=", poolsize))
	})

	It("resolves names into IPv4 and IPv6 addresses", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp", Timeout: 2 * time.Second}
		pool := Successful(New(ctx, 2, &dnsclnt, dnssrv.Addr))
		defer pool.StopWait()

		Expect(pool.Resolve(ctx, "foo.example")).To(ConsistOf("127.0.0.1", "::1"))
		Expect(pool.Resolve(ctx, "bar.example.")).To(ConsistOf("127.0.0.2"))
	})

	It("calls back exactly once", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp", Timeout: 2 * time.Second}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv.Addr))
		ch := make(chan []string, 2)
		pool.ResolveName(ctx, "foo.example", func(addrs []string, err error) {
			defer GinkgoRecover()
			Expect(err).NotTo(HaveOccurred())
			ch <- addrs
		})
		pool.StopWait()
		Expect(ch).To(HaveLen(1))
	})

	It("reports names without answers", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp", Timeout: 2 * time.Second}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv.Addr))
		defer pool.StopWait()

		addrs, err := pool.Resolve(ctx, "tld.rottennet")
		Expect(err).To(MatchError(ContainSubstring("yields no answers")))
		Expect(addrs).To(BeEmpty())
	})

	It("reports resolution failures", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp", Timeout: 250 * time.Millisecond}
		// nobody's listening on the discard port.
		pool := Successful(New(ctx, 1, &dnsclnt, "127.0.0.1:9"))
		defer pool.StopWait()

		Expect(pool.Resolve(ctx, "foo.example")).Error().To(HaveOccurred())
	})

	It("gives up waiting when the context is done", NodeTimeout(30*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp", Timeout: 2 * time.Second}
		pool := Successful(New(ctx, 1, &dnsclnt, dnssrv.Addr))
		defer pool.StopWait()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		Expect(pool.Resolve(cctx, "foo.example")).Error().To(MatchError(context.Canceled))
	})

})
