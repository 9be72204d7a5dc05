// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package services

import (
	"context"
	"fmt"
	"time"
)

// NATSServerRunner is satisfied by *broadcast.EmbeddedServer.
type NATSServerRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// NATSServerService supervises the embedded NATS server.
//
// The server is usually started by main before the broadcast transport
// connects to it. Serve then only starts it again after a crash, waits for
// cancellation and shuts it down.
type NATSServerService struct {
	server          NATSServerRunner
	shutdownTimeout time.Duration
	name            string
}

// NewNATSServerService creates the service with a 10s shutdown timeout.
func NewNATSServerService(server NATSServerRunner) *NATSServerService {
	return NewNATSServerServiceWithTimeout(server, 10*time.Second)
}

// NewNATSServerServiceWithTimeout creates the service with a custom shutdown
// timeout. A non-positive timeout defaults to 10s.
func NewNATSServerServiceWithTimeout(server NATSServerRunner, shutdownTimeout time.Duration) *NATSServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &NATSServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "nats-server",
	}
}

// Serve implements suture.Service. A failed start is returned so suture
// restarts the service with backoff.
func (s *NATSServerService) Serve(ctx context.Context) error {
	if !s.server.IsRunning() {
		if err := s.server.Start(ctx); err != nil {
			return fmt.Errorf("embedded NATS start failed: %w", err)
		}
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("embedded NATS shutdown failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for suture's event log.
func (s *NATSServerService) String() string {
	return s.name
}
