/*
Package resolver implements a simple limiting DNS client-request execution
pool. The urlcheck prober uses a [Pool] of “DNS workers” for A/AAAA lookups
when URL host names need to be resolved by a specific DNS server instead of the
system's resolver, or from inside a different network namespace. Please note
that the A/AAAA queries for a single name are not concurrent.

Usage

	dnsclnt := dns.Client{Net: "udp", Timeout: 2 * time.Second}
	pool, err := resolver.New(
	    context.Background(),
	    4,                     // number of parallel DNS connections and thus workers
	    &dnsclnt,              // DNS client
	    "127.0.0.53:53",       // address of server/resolver
	)
	addrs, err := pool.Resolve(ctx, "foobar.example.org")

# Acknowledgements

Under its hood, [Pool] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolver
