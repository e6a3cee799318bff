// Regression tests for rest.go.
//
// Main tests are really by running the end-to-end path in
// server_test.go and in the mgmtclient package.  This only contains
// special-case tests of the framework.
//
// Copyright 2018 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mgmtserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/diffeo/go-bossmgmt/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failResponseWriter struct {
	Headers    http.Header
	StatusCode int
}

func (rw *failResponseWriter) Header() http.Header {
	if rw.Headers == nil {
		rw.Headers = make(http.Header)
	}
	return rw.Headers
}

func (rw *failResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("foo")
}

// WriteHeader records the status; as with a real connection, only the
// first call counts.
func (rw *failResponseWriter) WriteHeader(code int) {
	if rw.StatusCode == 0 {
		rw.StatusCode = code
	}
}

// TestDoubleFault checks that, if there is an error serializing a JSON
// response, it doesn't actually panic the process.
func TestDoubleFault(t *testing.T) {
	store := memory.New()
	_, err := store.CreateCollection("col")
	require.NoError(t, err)

	router := NewRouter(store)
	req := &http.Request{
		Method: http.MethodGet,
		URL: &url.URL{
			Path: "/collection/col",
		},
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Close:      true,
		Host:       "localhost",
	}
	resp := &failResponseWriter{}
	assert.NotPanics(t, func() { router.ServeHTTP(resp, req) })
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHandlerPanic checks that a panicking handler produces a 500
// error response.
func TestHandlerPanic(t *testing.T) {
	h := &resourceHandler{
		Context: func(*http.Request) (*context, error) { return &context{}, nil },
		Get:     func(*context) (interface{}, error) { panic("kaboom") },
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "kaboom")
	assert.Contains(t, resp.Body.String(), `"panic"`)
}

func TestMethodNotAllowed(t *testing.T) {
	router := NewRouter(memory.New())
	req := httptest.NewRequest(http.MethodPut, "/collection/col", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestNegotiateResponse(t *testing.T) {
	for _, tc := range []struct {
		Accept   string
		Expected string
	}{
		{"", "application/json"},
		{"*/*", "application/json"},
		{"application/*", "application/json"},
		{"text/*", "text/json"},
		{"application/json", "application/json"},
		{"text/json", "text/json"},
		{"text/html, */*;q=0.1", "application/json"},
		{"*/*, text/json", "text/json"},
		{"application/json;q=0.5, text/json", "text/json"},
		{"text/json, application/json", "text/json"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.Accept != "" {
			req.Header.Set("Accept", tc.Accept)
		}
		actual, err := negotiateResponse(req)
		if assert.NoError(t, err, tc.Accept) {
			assert.Equal(t, tc.Expected, actual, tc.Accept)
		}
	}
}

func TestNegotiateFailures(t *testing.T) {
	for _, accept := range []string{
		"text/html",
		"application/json;q=0",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", accept)
		_, err := negotiateResponse(req)
		assert.Equal(t, errNotAcceptable{}, err, accept)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json;q=2")
	_, err := negotiateResponse(req)
	assert.Equal(t, errBadAccept, err)
}

func TestNotAcceptable(t *testing.T) {
	router := NewRouter(memory.New())
	req := httptest.NewRequest(http.MethodGet, "/collection", nil)
	req.Header.Set("Accept", "text/html")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotAcceptable, resp.Code)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header().Get("Content-Type"))
}
