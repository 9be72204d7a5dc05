// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/pavoi/hudson/internal/broadcast"
	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/database"
	"github.com/pavoi/hudson/internal/liveset"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/models"
	ws "github.com/pavoi/hudson/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

type testServer struct {
	*httptest.Server
	db  *database.DB
	hub *ws.Hub
}

// envelope decodes APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Driver:    config.DriverDuckDB,
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}

	bcfg := &config.BroadcastConfig{
		Transport:               config.TransportMemory,
		OutputBuffer:            64,
		PublishTimeout:          time.Second,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          time.Minute,
		BreakerFailureThreshold: 100,
	}
	tr := broadcast.NewMemoryTransport(bcfg)
	breaker := broadcast.NewCircuitBreaker("api-test", bcfg)
	pub := broadcast.NewPublisher(tr.Publisher, breaker, nil, time.Second)
	svc := liveset.NewService(db, pub)

	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "development"},
		WebSocket: config.WebSocketConfig{SendBuffer: 32},
		Security:  config.SecurityConfig{CORSOrigins: []string{"*"}, RateLimitDisabled: true},
	}

	hub := ws.NewHub(tr.Subscriber, svc, cfg.WebSocket)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	deadline := time.Now().Add(2 * time.Second)
	for !hub.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	h := NewHandler(db, svc, hub, cfg)
	h.SetBroadcastHealth(tr.Name(), breaker, nil)
	srv := httptest.NewServer(NewRouter(h, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi())

	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
		_ = pub.Close()
		_ = tr.Close()
		_ = db.Close()
	})
	return &testServer{Server: srv, db: db, hub: hub}
}

// call sends a JSON request and decodes the envelope. out, when non-nil,
// receives the data payload.
func (s *testServer) call(t *testing.T, method, path string, body interface{}, out interface{}) (int, *envelope) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	if out != nil && env.Success {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return resp.StatusCode, &env
}

// mustCall fails the test unless the response status is want.
func (s *testServer) mustCall(t *testing.T, want int, method, path string, body, out interface{}) *envelope {
	t.Helper()
	status, env := s.call(t, method, path, body, out)
	if status != want {
		detail := ""
		if env != nil && env.Error != nil {
			detail = env.Error.Code + ": " + env.Error.Message
		}
		t.Fatalf("%s %s status = %d, want %d (%s)", method, path, status, want, detail)
	}
	return env
}

// seed is a brand with one product set holding products with the given
// numbers of images at positions 1..n.
type seed struct {
	brand   models.Brand
	set     models.ProductSet
	entries []models.ProductSetEntry
}

func (s *testServer) seed(t *testing.T, slug string, imageCounts ...int) *seed {
	t.Helper()
	sd := &seed{}
	s.mustCall(t, http.StatusCreated, http.MethodPost, "/api/v1/brands",
		CreateBrandRequest{Name: "Acme " + slug, Slug: slug}, &sd.brand)
	s.mustCall(t, http.StatusCreated, http.MethodPost, fmt.Sprintf("/api/v1/brands/%d/product-sets", sd.brand.ID),
		CreateProductSetRequest{Name: "Spring drop", Slug: "spring-drop"}, &sd.set)

	for i, n := range imageCounts {
		req := CreateProductRequest{Name: fmt.Sprintf("Product %d", i+1), OriginalPriceCents: int64(1000 * (i + 1))}
		for j := 0; j < n; j++ {
			req.Images = append(req.Images, ProductImageRequest{URL: fmt.Sprintf("https://cdn.example.com/%s/%d/%d.jpg", slug, i, j)})
		}
		var p models.Product
		s.mustCall(t, http.StatusCreated, http.MethodPost, fmt.Sprintf("/api/v1/brands/%d/products", sd.brand.ID), req, &p)

		var e models.ProductSetEntry
		s.mustCall(t, http.StatusCreated, http.MethodPost, fmt.Sprintf("/api/v1/product-sets/%d/entries", sd.set.ID),
			AddEntryRequest{ProductID: p.ID}, &e)
		sd.entries = append(sd.entries, e)
	}
	return sd
}

func (sd *seed) path(suffix string) string {
	return fmt.Sprintf("/api/v1/product-sets/%d%s", sd.set.ID, suffix)
}
