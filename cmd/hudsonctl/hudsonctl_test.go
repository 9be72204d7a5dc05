// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/goccy/go-json"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

// fakeServer answers every request with a live state at version 7 and records
// what it received. Paths ending in /fail get a 422 error envelope.
type fakeServer struct {
	*httptest.Server
	mu   sync.Mutex
	reqs []recorded
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		fs.mu.Lock()
		fs.reqs = append(fs.reqs, rec)
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/ui"):
			_, _ = w.Write([]byte(`{"success":true,"data":{"product_set_id":12,"key":"show_price","value":true}}`))
		case strings.Contains(r.URL.Path, "/product-sets/99/"):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"END_OF_PRODUCT_SET","message":"Already at the last product"}}`))
		default:
			_, _ = w.Write([]byte(`{"success":true,"data":{"product_set_id":12,"state":{"product_set_id":12,"version":7,"current_image_index":0},"current":{"entry_id":3,"position":2,"name":"Linen Tote","image_count":2,"image_urls":["a","b"]},"entry_count":4}}`))
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) last() recorded {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.reqs) == 0 {
		return recorded{}
	}
	return fs.reqs[len(fs.reqs)-1]
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStateCommands(t *testing.T) {
	fs := newFakeServer(t)

	tests := []struct {
		name       string
		args       []string
		wantMethod string
		wantPath   string
		wantBody   map[string]any
	}{
		{"get", []string{"state", "get", "12"}, http.MethodGet, "/api/v1/product-sets/12/state", nil},
		{"init", []string{"state", "init", "12"}, http.MethodPost, "/api/v1/product-sets/12/state/init", nil},
		{"jump", []string{"state", "jump", "12", "3"}, http.MethodPost, "/api/v1/product-sets/12/state/jump", map[string]any{"position": float64(3)}},
		{"next", []string{"state", "next", "12"}, http.MethodPost, "/api/v1/product-sets/12/state/next", nil},
		{"prev", []string{"state", "prev", "12"}, http.MethodPost, "/api/v1/product-sets/12/state/previous", nil},
		{"image cycle", []string{"state", "image", "12", "previous"}, http.MethodPost, "/api/v1/product-sets/12/state/image/cycle", map[string]any{"direction": "previous"}},
		{"image index", []string{"state", "image", "12", "1"}, http.MethodPut, "/api/v1/product-sets/12/state/image", map[string]any{"index": float64(1)}},
		{"message", []string{"state", "message", "12", "Last call", "--color", "red"}, http.MethodPost, "/api/v1/product-sets/12/state/message", map[string]any{"text": "Last call", "color": "red"}},
		{"message default color", []string{"state", "message", "12", "Hi"}, http.MethodPost, "/api/v1/product-sets/12/state/message", map[string]any{"text": "Hi", "color": "default"}},
		{"message preset", []string{"state", "message", "12", "--preset", "5"}, http.MethodPost, "/api/v1/product-sets/12/state/message/preset", map[string]any{"preset_id": float64(5)}},
		{"clear", []string{"state", "clear", "12"}, http.MethodDelete, "/api/v1/product-sets/12/state/message", nil},
		{"ui set", []string{"ui", "set", "12", "show_price", "true"}, http.MethodPost, "/api/v1/product-sets/12/ui", map[string]any{"key": "show_price", "value": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			out, err := run(t, append(tt.args, "--server", fs.URL)...)
			c.Assert(err, qt.IsNil)
			c.Assert(out, qt.Not(qt.Equals), "")

			got := fs.last()
			c.Assert(got.method, qt.Equals, tt.wantMethod)
			c.Assert(got.path, qt.Equals, tt.wantPath)
			c.Assert(got.body, qt.DeepEquals, tt.wantBody)
		})
	}
}

func TestStateOutput(t *testing.T) {
	c := qt.New(t)
	fs := newFakeServer(t)

	out, err := run(t, "state", "get", "12", "--server", fs.URL)
	c.Assert(err, qt.IsNil)
	var live map[string]any
	c.Assert(json.Unmarshal([]byte(out), &live), qt.IsNil)
	c.Assert(live["entry_count"], qt.Equals, float64(4))

	out, err = run(t, "state", "get", "12", "--server", fs.URL, "-o", "text")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "version 7")
	c.Assert(out, qt.Contains, "#2 Linen Tote  image 1/2")
}

func TestServerFromEnvironment(t *testing.T) {
	c := qt.New(t)
	fs := newFakeServer(t)
	t.Setenv("HUDSONCTL_SERVER", fs.URL)

	_, err := run(t, "state", "next", "12")
	c.Assert(err, qt.IsNil)
	c.Assert(fs.last().path, qt.Equals, "/api/v1/product-sets/12/state/next")
}

func TestCommandErrors(t *testing.T) {
	fs := newFakeServer(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"server error envelope", []string{"state", "next", "99"}, "END_OF_PRODUCT_SET: Already at the last product (HTTP 422)"},
		{"bad set ID", []string{"state", "get", "abc"}, `invalid product set ID "abc"`},
		{"zero set ID", []string{"state", "get", "0"}, "must be a positive integer"},
		{"bad position", []string{"state", "jump", "12", "x"}, `invalid position "x"`},
		{"bad image", []string{"state", "image", "12", "sideways"}, `invalid image index "sideways"`},
		{"missing args", []string{"state", "jump", "12"}, "accepts 2 arg(s)"},
		{"message without text", []string{"state", "message", "12"}, "TEXT or --preset is required"},
		{"text and preset", []string{"state", "message", "12", "hi", "--preset", "3"}, "mutually exclusive"},
		{"bad toggle value", []string{"ui", "set", "12", "k", "maybe"}, `invalid toggle value "maybe"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := run(t, append(tt.args, "--server", fs.URL)...)
			c.Assert(err, qt.ErrorMatches, ".*"+regexp.QuoteMeta(tt.wantErr)+".*")
		})
	}
}

func TestClient_APIError(t *testing.T) {
	c := qt.New(t)
	fs := newFakeServer(t)

	_, err := NewClient(fs.URL+"/", time.Second).Next(context.Background(), 99)
	var apiErr *APIError
	c.Assert(err, qt.ErrorAs, &apiErr)
	c.Assert(apiErr.Status, qt.Equals, http.StatusUnprocessableEntity)
	c.Assert(apiErr.Code, qt.Equals, "END_OF_PRODUCT_SET")
}

func TestClient_NonJSONResponse(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetState(context.Background(), 1)
	var apiErr *APIError
	c.Assert(err, qt.ErrorAs, &apiErr)
	c.Assert(apiErr.Code, qt.Equals, "INVALID_RESPONSE")
	c.Assert(apiErr.Status, qt.Equals, http.StatusBadGateway)
}
