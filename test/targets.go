// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package test

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// Targets is a set of HTTP probe targets running on the loopback interface:
// one always answering 200 OK, one always 404 Not Found, one redirecting with
// 302 Found, and one that accepts connections but never answers.
type Targets struct {
	OK       *httptest.Server
	Missing  *httptest.Server
	Redirect *httptest.Server
	Hang     *httptest.Server

	release   chan struct{}
	closeOnce sync.Once
}

// NewTargets starts a new set of probe targets; callers must call Close when
// done with them.
func NewTargets() *Targets {
	t := &Targets{
		release: make(chan struct{}),
	}
	t.OK = httptest.NewServer(StatusHandler(http.StatusOK))
	t.Missing = httptest.NewServer(StatusHandler(http.StatusNotFound))
	t.Redirect = httptest.NewServer(http.RedirectHandler("/elsewhere", http.StatusFound))
	t.Hang = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-t.release:
		}
	}))
	return t
}

// StatusHandler returns a handler always answering with the specified status
// code and an empty body.
func StatusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// Close shuts down all probe targets, releasing any hanging requests first.
func (t *Targets) Close() {
	t.closeOnce.Do(func() {
		close(t.release)
		t.OK.Close()
		t.Missing.Close()
		t.Redirect.Close()
		t.Hang.Close()
	})
}
