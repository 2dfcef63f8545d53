// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package test

import (
	"net"
	"strings"

	"github.com/miekg/dns"
)

// DNSServer is an in-process UDP DNS server answering A and AAAA queries from
// a static table.
type DNSServer struct {
	Addr   string // host:port the server listens on.
	server *dns.Server
}

// NewDNSServer starts a DNS server on the IPv4 loopback interface answering
// queries for the names in the specified table, mapping names to IP address
// literals. Names not in the table get an empty answer section.
func NewDNSServer(records map[string][]string) (*DNSServer, error) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	table := map[string][]string{}
	for name, addrs := range records {
		table[dns.Fqdn(strings.ToLower(name))] = addrs
	}
	started := make(chan struct{})
	s := &DNSServer{
		Addr: pc.LocalAddr().String(),
		server: &dns.Server{
			PacketConn:        pc,
			NotifyStartedFunc: func() { close(started) },
			Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
				m := new(dns.Msg)
				m.SetReply(r)
				for _, q := range r.Question {
					for _, addr := range table[strings.ToLower(q.Name)] {
						ip := net.ParseIP(addr)
						hdr := dns.RR_Header{Name: q.Name, Class: dns.ClassINET, Ttl: 60}
						switch {
						case ip == nil:
							continue
						case ip.To4() != nil && q.Qtype == dns.TypeA:
							hdr.Rrtype = dns.TypeA
							m.Answer = append(m.Answer, &dns.A{Hdr: hdr, A: ip.To4()})
						case ip.To4() == nil && q.Qtype == dns.TypeAAAA:
							hdr.Rrtype = dns.TypeAAAA
							m.Answer = append(m.Answer, &dns.AAAA{Hdr: hdr, AAAA: ip})
						}
					}
				}
				_ = w.WriteMsg(m)
			}),
		},
	}
	go func() { _ = s.server.ActivateAndServe() }()
	<-started
	return s, nil
}

// Close shuts down the DNS server.
func (s *DNSServer) Close() {
	_ = s.server.Shutdown()
}
