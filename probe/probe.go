// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/siemens/urlcheck/resolver"
	"github.com/siemens/urlcheck/types"

	"github.com/thediveo/lxkns/log"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
	"golang.org/x/time/rate"
)

// Default probe timeouts.
const (
	DefaultConnectTimeout = 2000 * time.Millisecond
	DefaultReadTimeout    = 2000 * time.Millisecond
)

// Prober classifies URLs by sending them HEAD requests and looking at the
// response status codes. A Prober can be used concurrently from any number of
// goroutines, as each probe is independent of all others.
type Prober struct {
	connectTimeout time.Duration // bounds dialing, including name resolution.
	readTimeout    time.Duration // bounds TLS handshake and waiting for response headers.
	userAgent      string

	netns    relations.Relation // network namespace to dial from, or nil.
	resolver *resolver.Pool     // optional DNS resolver pool, or nil for the system's.
	limiter  *rate.Limiter      // optional probe rate limiter, or nil.

	client *http.Client
}

// Option can be passed to New when creating new Prober objects.
type Option func(*Prober)

// New returns a new [Prober]. The new prober defaults to connect and read
// timeouts of 2s each.
//
// The prober can be configured during creation using several options:
//   - [WithConnectTimeout]
//   - [WithReadTimeout]
//   - [WithUserAgent]
//   - [WithResolver]
//   - [WithRateLimit]
//
// To operate a Prober in a network namespace different to that of the OS-level
// thread of the caller specify the [InNetworkNamespace] option and pass it a
// filesystem path that must reference a network namespace (such as
// "/proc/666/ns/net").
func New(options ...Option) *Prober {
	p := &Prober{
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		userAgent:      "urlcheck/1.0",
	}
	for _, opt := range options {
		opt(p)
	}
	transport := &http.Transport{
		DialContext:           p.dialContext,
		TLSHandshakeTimeout:   p.readTimeout,
		ResponseHeaderTimeout: p.readTimeout,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
	}
	p.client = &http.Client{
		Transport: transport,
		// A redirect is an answer in its own right, so never follow it but
		// classify it instead.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return p
}

// WithConnectTimeout sets the maximum duration for establishing a connection
// to the probed server, including resolving its name through a resolver pool.
func WithConnectTimeout(timeout time.Duration) Option {
	if timeout <= 0 {
		panic(fmt.Errorf("Prober: connect timeout must be positive, got: %s", timeout))
	}
	return func(p *Prober) {
		p.connectTimeout = timeout
	}
}

// WithReadTimeout sets the maximum duration for waiting for the response
// headers after the connection has been established.
func WithReadTimeout(timeout time.Duration) Option {
	if timeout <= 0 {
		panic(fmt.Errorf("Prober: read timeout must be positive, got: %s", timeout))
	}
	return func(p *Prober) {
		p.readTimeout = timeout
	}
}

// WithUserAgent sets the User-Agent header value sent with each probe.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithResolver resolves the host names of probed URLs using the specified DNS
// resolver pool instead of the system's resolver.
func WithResolver(pool *resolver.Pool) Option {
	return func(p *Prober) {
		p.resolver = pool
	}
}

// WithRateLimit makes all probes of this Prober wait on the specified limiter
// before starting.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(p *Prober) {
		p.limiter = limiter
	}
}

// InNetworkNamespace optionally dials all probe connections from inside the
// network namespace referenced by the specified filesystem path. An empty
// path keeps the current network namespace.
func InNetworkNamespace(netnsref string) Option {
	return func(p *Prober) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Probe returns the classification of the specified URL.
func (p *Prober) Probe(ctx context.Context, url string) types.Classification {
	return p.Check(ctx, url).Class
}

// Check probes the specified URL and returns the detailed verdict. Check never
// panics and never returns an error: any fault while probing results in an
// Indeterminate verdict, with the fault attached to the verdict.
func (p *Prober) Check(ctx context.Context, url string) (verdict types.Verdict) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			verdict = types.IndeterminateVerdict(url, fmt.Errorf("probe panicked: %v", r))
		}
		verdict.Latency = time.Since(start)
		log.Debugf("probed %s: %s (status %d, %s)",
			url, verdict.Class, verdict.StatusCode, verdict.Latency)
	}()

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return types.IndeterminateVerdict(url, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return types.IndeterminateVerdict(url, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	resp, err := p.client.Do(req)
	if err != nil {
		return types.IndeterminateVerdict(url, err)
	}
	// HEAD responses don't have a body, but the transport wants it closed
	// anyway in order to reuse the connection.
	_ = resp.Body.Close()
	return types.Verdict{
		URL:        url,
		Class:      types.Classify(resp.StatusCode),
		StatusCode: resp.StatusCode,
	}
}

// Close releases any idle connections kept by the Prober.
func (p *Prober) Close() {
	p.client.CloseIdleConnections()
}

// dialContext dials the probed server with the connect timeout, resolving its
// name using the resolver pool if configured, and switching into the
// configured network namespace if necessary.
func (p *Prober) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	addrs := []string{addr}
	if p.resolver != nil {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		if net.ParseIP(host) == nil {
			ips, err := p.resolver.Resolve(ctx, host)
			if err != nil {
				return nil, &net.DNSError{Err: err.Error(), Name: host, IsNotFound: true}
			}
			addrs = addrs[:0]
			for _, ip := range ips {
				addrs = append(addrs, net.JoinHostPort(ip, port))
			}
		}
	}

	var errs []error
	for _, addr := range addrs {
		conn, err := p.dial(ctx, network, addr)
		if err == nil {
			return conn, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

// dial a single address, from inside the configured network namespace if
// necessary. Sockets stay attached to the network namespace they were created
// in, so only the dial itself needs to run in the other namespace.
func (p *Prober) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := net.Dialer{}
	if p.netns == nil {
		return dialer.DialContext(ctx, network, addr)
	}
	// lxkns' ops.Execute differentiates between a namespace switching error
	// and the under switched namespaces called function result.
	type dialed struct {
		conn net.Conn
		err  error
	}
	res, err := ops.Execute(func() interface{} {
		conn, err := dialer.DialContext(ctx, network, addr)
		return dialed{conn: conn, err: err}
	}, p.netns)
	if err != nil {
		return nil, fmt.Errorf("cannot switch into network namespace: %w", err)
	}
	d := res.(dialed)
	return d.conn, d.err
}
