// Package filetest provides helpers for exercising filekit response
// handlers against a real HTTP server in tests.
package filetest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Result captures everything a response handler produced.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do serves h on an httptest server, performs one request against it, and
// returns the captured result. The header may be nil.
func Do(t testing.TB, h http.Handler, method string, header http.Header) *Result {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+"/", nil)
	if err != nil {
		t.Fatalf("filetest: build request: %v", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("filetest: do request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("filetest: close body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("filetest: read body: %v", err)
	}

	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: body}
}

// Get performs a GET request against h.
func Get(t testing.TB, h http.Handler) *Result {
	t.Helper()
	return Do(t, h, http.MethodGet, nil)
}

// Head performs a HEAD request against h.
func Head(t testing.TB, h http.Handler) *Result {
	t.Helper()
	return Do(t, h, http.MethodHead, nil)
}
