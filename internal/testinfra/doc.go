// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package testinfra starts the external services of a multi-instance
// deployment in Docker for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/database/... ./internal/broadcast/...
//
// # PostgreSQL
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, pg.Container)
//
//	db, err := database.New(&config.DatabaseConfig{
//	    Driver: config.DriverPostgres,
//	    DSN:    pg.DSN,
//	})
//
// # NATS
//
// NewNATSContainer runs a standalone server so the NATS transport is tested
// against a broker it does not own.
//
// Tests skip when Docker is unavailable.
package testinfra
