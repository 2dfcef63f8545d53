/*
Package probe implements an HTTP-based URL reachability classifier.

A [Prober] sends a HEAD request to a URL, so that only the response headers but
never a response body get transferred, and classifies the URL based on the
response status code:

	              +---+
	URL string -->| P +--> types.Classification
	              +---+

  - [types.Reachable] for status codes 200..399,
  - [types.Failed] for any other status code received,
  - [types.Indeterminate] when no response could be obtained, for instance due
    to connect or read timeouts, DNS failures, or refused connections.

Redirects are never followed; a redirect status code is an answer in itself.

Connecting and reading have their own independent timeouts: the connect
timeout bounds establishing the TCP connection (and resolving the host name
when using a [resolver.Pool]), while the read timeout bounds the TLS handshake
and waiting for the response headers.

# Network Namespaces

Using [InNetworkNamespace] a Prober dials its connections from inside a
different network namespace, such as the one of a container. This is done
using lxkns' [ops.Execute], which switches a locked OS-level thread only for
the duration of the dial.

[ops.Execute]: https://pkg.go.dev/github.com/thediveo/lxkns/ops#Execute
*/
package probe
