// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*WebSocketHubService)(nil)
	_ suture.Service = (*NATSServerService)(nil)
	_ suture.Service = (*WALRetryLoopService)(nil)

	_ fmt.Stringer = (*HTTPServerService)(nil)
	_ fmt.Stringer = (*WebSocketHubService)(nil)
	_ fmt.Stringer = (*NATSServerService)(nil)
	_ fmt.Stringer = (*WALRetryLoopService)(nil)
)

// serveUntilCanceled runs svc, cancels after the started signal and returns
// Serve's result.
func serveUntilCanceled(t *testing.T, svc suture.Service, started <-chan struct{}) error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-started:
	case err := <-done:
		cancel()
		return err
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("service did not start")
	}
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
		return nil
	}
}

type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	stop        chan struct{}
	shutdowns   atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{started: make(chan struct{}), stop: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	close(f.started)
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	close(f.stop)
	return f.shutdownErr
}

func TestHTTPServerService(t *testing.T) {
	tests := []struct {
		name          string
		listenErr     error
		shutdownErr   error
		wantErr       error
		wantShutdowns int32
	}{
		{"graceful shutdown", nil, nil, context.Canceled, 1},
		{"listen fails", errors.New("address already in use"), nil, nil, 0},
		{"shutdown fails", nil, errors.New("deadline"), nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeHTTPServer()
			srv.listenErr = tt.listenErr
			srv.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(srv, time.Second)

			err := serveUntilCanceled(t, svc, srv.started)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
				}
			case err == nil:
				t.Error("Serve() error = nil, want failure")
			}
			if got := srv.shutdowns.Load(); got != tt.wantShutdowns {
				t.Errorf("Shutdown calls = %d, want %d", got, tt.wantShutdowns)
			}
		})
	}

	if svc := NewHTTPServerService(newFakeHTTPServer(), 0); svc.shutdownTimeout != 10*time.Second {
		t.Errorf("default shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
	}
}

type fakeHub struct {
	started chan struct{}
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	close(f.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubService(t *testing.T) {
	hub := &fakeHub{started: make(chan struct{})}
	svc := NewWebSocketHubService(hub)
	if svc.String() != "websocket-hub" {
		t.Errorf("String() = %q", svc.String())
	}
	if err := serveUntilCanceled(t, svc, hub.started); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

type fakeNATSServer struct {
	mu        sync.Mutex
	running   bool
	startErr  error
	starts    int
	shutdowns int
	started   chan struct{}
}

func (f *fakeNATSServer) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeNATSServer) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
	f.running = false
	return nil
}

func (f *fakeNATSServer) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	running := f.running
	if running && f.started != nil {
		close(f.started)
		f.started = nil
	}
	return running
}

func TestNATSServerService(t *testing.T) {
	t.Run("already running is not restarted", func(t *testing.T) {
		started := make(chan struct{})
		srv := &fakeNATSServer{running: true, started: started}
		svc := NewNATSServerService(srv)

		if err := serveUntilCanceled(t, svc, started); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
		if srv.starts != 0 || srv.shutdowns != 1 {
			t.Errorf("starts = %d, shutdowns = %d, want 0 and 1", srv.starts, srv.shutdowns)
		}
	})

	t.Run("start failure is returned", func(t *testing.T) {
		srv := &fakeNATSServer{startErr: errors.New("port in use")}
		svc := NewNATSServerServiceWithTimeout(srv, 0)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("default shutdownTimeout = %v", svc.shutdownTimeout)
		}
		if err := svc.Serve(context.Background()); err == nil {
			t.Error("Serve() error = nil, want start failure")
		}
	})
}

type fakeRetryLoop struct {
	mu       sync.Mutex
	running  bool
	startErr error
	stops    int
	started  chan struct{}
}

func (f *fakeRetryLoop) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.mu.Lock()
	f.running = true
	f.mu.Unlock()
	close(f.started)
	return nil
}

func (f *fakeRetryLoop) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.stops++
}

func (f *fakeRetryLoop) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func TestWALRetryLoopService(t *testing.T) {
	loop := &fakeRetryLoop{started: make(chan struct{})}
	svc := NewWALRetryLoopService(loop)

	if err := serveUntilCanceled(t, svc, loop.started); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if loop.IsRunning() || loop.stops != 1 {
		t.Errorf("running = %v, stops = %d, want stopped once", loop.IsRunning(), loop.stops)
	}

	failing := NewWALRetryLoopService(&fakeRetryLoop{startErr: errors.New("closed")})
	if err := failing.Serve(context.Background()); err == nil {
		t.Error("Serve() error = nil, want start failure")
	}
}
