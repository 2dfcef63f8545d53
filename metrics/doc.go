/*
Package metrics records URL probe verdicts as Prometheus metrics.

As urlcheck is a run-to-completion tool rather than a service, there is no
scrape endpoint; instead, the metrics of a run can be written to a file in the
Prometheus text format, to be picked up by node_exporter's textfile collector.
*/
package metrics
