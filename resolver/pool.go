// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// Pool resolves host names of probed URLs against a single DNS server, using
// a fixed number of client connections.
type Pool struct {
	netns   relations.Relation // network namespace to dial from, or nil.
	dnsclnt *dns.Client
	workers *workerpool.WorkerPool
	mu      sync.Mutex
	free    []*dns.Conn // idle connections
}

// Option can be passed to New when creating new [Pool] objects.
type Option func(*Pool)

// New dials size connections to the DNS server at addr and returns the Pool
// serving lookups over them; at most size lookups run at the same time. ctx
// bounds dialing only.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string, options ...Option) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("resolver pool size must be positive, got: %d", size)
	}
	pool := &Pool{
		dnsclnt: dnsclnt,
		workers: workerpool.New(size),
	}
	for _, opt := range options {
		opt(pool)
	}
	free, err := pool.dialAll(ctx, size, addr)
	if err != nil {
		pool.workers.StopWait()
		return nil, fmt.Errorf("cannot dial DNS resolver %s: %w", addr, err)
	}
	pool.free = free
	return pool, nil
}

// dialAll dials size connections to addr, switching into the configured
// network namespace if necessary. Either all connections get dialed or none.
func (p *Pool) dialAll(ctx context.Context, size int, addr string) ([]*dns.Conn, error) {
	type dialed struct {
		conns []*dns.Conn
		err   error
	}
	dial := func() interface{} {
		conns := make([]*dns.Conn, 0, size)
		for len(conns) < size {
			conn, err := p.dnsclnt.DialContext(ctx, addr)
			if err != nil {
				for _, conn := range conns {
					conn.Close()
				}
				return dialed{err: err}
			}
			conns = append(conns, conn)
		}
		return dialed{conns: conns}
	}
	if p.netns == nil {
		d := dial().(dialed)
		return d.conns, d.err
	}
	res, err := ops.Execute(dial, p.netns)
	if err != nil {
		return nil, fmt.Errorf("cannot switch into network namespace: %w", err)
	}
	d := res.(dialed)
	return d.conns, d.err
}

// InNetworkNamespace dials the connections from inside the network namespace
// referenced by netnsref, such as "/proc/42/ns/net". An empty netnsref is
// ignored.
func InNetworkNamespace(netnsref string) Option {
	return func(p *Pool) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Submit queues fn to run as soon as a connection is idle.
func (p *Pool) Submit(fn func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(fn) })
}

// ResolveName looks up the IPv4 and IPv6 addresses of name in the background
// and then calls fn exactly once with all addresses found, or with an error.
// Finding no address at all is an error.
func (p *Pool) ResolveName(ctx context.Context, name string, fn func([]string, error)) {
	p.Submit(func(conn *dns.Conn) {
		var addrs []string
		var err error
		defer func() { fn(addrs, err) }()

		fqdn := dns.Fqdn(name)
		for _, addrType := range []uint16{dns.TypeA, dns.TypeAAAA} {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			default:
			}

			msg := dns.Msg{
				MsgHdr: dns.MsgHdr{Id: dns.Id()},
			}
			msg.SetQuestion(fqdn, addrType)
			var r *dns.Msg
			r, _, err = p.dnsclnt.ExchangeWithConn(&msg, conn)
			if err != nil {
				return
			}
			for _, rr := range r.Answer {
				switch addrRR := rr.(type) {
				case *dns.A:
					addrs = append(addrs, addrRR.A.String())
				case *dns.AAAA:
					addrs = append(addrs, addrRR.AAAA.String())
				}
			}
		}
		if len(addrs) == 0 {
			err = fmt.Errorf("query for %q yields no answers", fqdn)
		}
	})
}

// Resolve returns the addresses of name, as [Pool.ResolveName] does, but
// waits for them. It gives up early when ctx is done.
func (p *Pool) Resolve(ctx context.Context, name string) ([]string, error) {
	type result struct {
		addrs []string
		err   error
	}
	ch := make(chan result, 1)
	p.ResolveName(ctx, name, func(addrs []string, err error) {
		ch <- result{addrs: addrs, err: err}
	})
	select {
	case res := <-ch:
		return res.addrs, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// task runs fn on an idle connection, which becomes idle again afterwards.
func (p *Pool) task(fn func(conn *dns.Conn)) {
	conn := p.acquire()
	defer p.release(conn)
	fn(conn)
}

// acquire takes an idle connection. As the worker pool never runs more tasks
// than there are connections, there always is an idle one.
func (p *Pool) acquire() *dns.Conn {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		panic("resolver: no idle DNS connection")
	}
	conn := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return conn
}

func (p *Pool) release(conn *dns.Conn) {
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait finishes all queued lookups and then closes the connections.
func (p *Pool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
