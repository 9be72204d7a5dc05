// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package services

import (
	"context"
	"fmt"
)

// WALStartStopper is satisfied by *wal.RetryLoop.
type WALStartStopper interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
}

// WALRetryLoopService runs the loop that redelivers parked state broadcasts.
type WALRetryLoopService struct {
	retryLoop WALStartStopper
	name      string
}

// NewWALRetryLoopService creates the service.
func NewWALRetryLoopService(retryLoop WALStartStopper) *WALRetryLoopService {
	return &WALRetryLoopService{
		retryLoop: retryLoop,
		name:      "wal-retry-loop",
	}
}

// Serve implements suture.Service. Stop blocks until the in-flight retry
// pass has finished.
func (s *WALRetryLoopService) Serve(ctx context.Context) error {
	if err := s.retryLoop.Start(ctx); err != nil {
		return fmt.Errorf("WAL retry loop start failed: %w", err)
	}

	<-ctx.Done()
	s.retryLoop.Stop()
	return ctx.Err()
}

// String implements fmt.Stringer for suture's event log.
func (s *WALRetryLoopService) String() string {
	return s.name
}
