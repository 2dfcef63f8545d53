/*
Package test provides a small test harness for the urlcheck packages: HTTP
probe targets answering with fixed status codes or not at all, and an
in-process DNS server with static A/AAAA records.
*/
package test
