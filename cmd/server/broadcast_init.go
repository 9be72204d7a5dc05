// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/pavoi/hudson/internal/broadcast"
	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/supervisor"
	"github.com/pavoi/hudson/internal/supervisor/services"
	"github.com/pavoi/hudson/internal/wal"
)

// BroadcastComponents holds everything between a committed mutation and the
// hub's subscriber: optional embedded NATS, the transport, the breaker, the
// WAL and the publisher that ties them together.
type BroadcastComponents struct {
	natsServer *broadcast.EmbeddedServer
	transport  *broadcast.Transport
	breaker    *gobreaker.CircuitBreaker[interface{}]
	walStore   *wal.Store
	retryLoop  *wal.RetryLoop
	publisher  *broadcast.Publisher
}

// InitBroadcast builds the broadcast stack described by cfg. On error every
// component opened so far is closed again.
func InitBroadcast(cfg *config.Config) (*BroadcastComponents, error) {
	c := &BroadcastComponents{}
	fail := func(err error) (*BroadcastComponents, error) {
		if closeErr := c.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing broadcast components after init failure")
		}
		return nil, err
	}

	var err error
	natsURL := ""
	if cfg.Broadcast.Transport == config.TransportNATS && cfg.NATS.EmbeddedServer {
		c.natsServer, err = broadcast.NewEmbeddedServer(&cfg.NATS)
		if err != nil {
			return fail(fmt.Errorf("start embedded NATS: %w", err))
		}
		natsURL = c.natsServer.ClientURL()
	}

	c.transport, err = broadcast.NewTransport(cfg, natsURL)
	if err != nil {
		return fail(fmt.Errorf("create broadcast transport: %w", err))
	}

	if cfg.WAL.Enabled {
		c.walStore, err = wal.Open(&cfg.WAL)
		if err != nil {
			return fail(fmt.Errorf("open WAL: %w", err))
		}
	} else {
		logging.Warn().Msg("WAL disabled (WAL_ENABLED=false). Failed broadcasts are only logged.")
	}

	c.breaker = broadcast.NewCircuitBreaker("broadcast", &cfg.Broadcast)
	c.publisher = broadcast.NewPublisher(c.transport.Publisher, c.breaker, c.walStore, cfg.Broadcast.PublishTimeout)

	if c.walStore != nil {
		c.retryLoop = wal.NewRetryLoop(c.walStore, c.publisher, cfg.WAL.RetryInterval)
	}

	logging.Info().
		Str("transport", c.transport.Name()).
		Bool("embedded_nats", c.natsServer != nil).
		Bool("wal_enabled", c.walStore != nil).
		Msg("Broadcast initialized")
	return c, nil
}

// AddToSupervisor registers the long-running parts with the tree.
func (c *BroadcastComponents) AddToSupervisor(tree *supervisor.SupervisorTree) {
	if c.natsServer != nil {
		tree.AddMessagingService(services.NewNATSServerService(c.natsServer))
		logging.Info().Msg("Embedded NATS server added to supervisor tree")
	}
	if c.retryLoop != nil {
		tree.AddDataService(services.NewWALRetryLoopService(c.retryLoop))
		logging.Info().Msg("WAL retry loop added to supervisor tree")
	}
}

// Close releases the publisher, transport, WAL and embedded server, in that
// order. Nil components are skipped.
func (c *BroadcastComponents) Close() error {
	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.transport != nil {
		errs = append(errs, c.transport.Close())
	}
	if c.walStore != nil {
		errs = append(errs, c.walStore.Close())
	}
	if c.natsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, c.natsServer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
