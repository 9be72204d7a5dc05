// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
)

// EmbeddedServer runs a NATS server inside the process for deployments that
// do not have one. Only core NATS is used, so JetStream stays off.
type EmbeddedServer struct {
	opts *server.Options

	mu        sync.Mutex
	server    *server.Server
	clientURL string
}

// NewEmbeddedServer creates and starts an embedded NATS server.
// A Port of -1 picks a random free port.
func NewEmbeddedServer(cfg *config.NATSConfig) (*EmbeddedServer, error) {
	s := &EmbeddedServer{
		opts: &server.Options{
			ServerName: "hudson-broadcast",
			Host:       cfg.Host,
			Port:       cfg.Port,
			JetStream:  false,
			NoSigs:     true,
			MaxPayload: 1024 * 1024,
		},
	}
	if err := s.start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EmbeddedServer) start() error {
	ns, err := server.NewServer(s.opts)
	if err != nil {
		return fmt.Errorf("create NATS server: %w", err)
	}

	ns.ConfigureLogger()
	go ns.Start()

	if !ns.ReadyForConnections(30 * time.Second) {
		ns.Shutdown()
		return errors.New("NATS server not ready within timeout")
	}

	s.server = ns
	s.clientURL = ns.ClientURL()
	logging.Info().Str("url", s.clientURL).Msg("Embedded NATS server started")
	return nil
}

// Start restarts the server if it has been shut down. Used by the supervisor.
func (s *EmbeddedServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil && s.server.Running() {
		return nil
	}
	return s.start()
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedServer) ClientURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientURL
}

// Shutdown stops the server and waits for it to exit unless ctx ends first.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	ns := s.server
	s.mu.Unlock()
	if ns == nil {
		return nil
	}

	ns.Shutdown()

	done := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		logging.Info().Msg("Embedded NATS server stopped")
		return nil
	}
}

// IsRunning returns server health status.
func (s *EmbeddedServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil && s.server.Running()
}
