// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package main

import (
	"io"
	"testing"
	"time"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Broadcast: config.BroadcastConfig{
			Transport:               config.TransportMemory,
			OutputBuffer:            16,
			PublishTimeout:          time.Second,
			BreakerMaxRequests:      1,
			BreakerInterval:         time.Minute,
			BreakerTimeout:          time.Minute,
			BreakerFailureThreshold: 5,
		},
		NATS: config.NATSConfig{
			Host:          "127.0.0.1",
			Port:          -1,
			MaxReconnects: 2,
			ReconnectWait: 50 * time.Millisecond,
		},
		WAL: config.WALConfig{InMemory: true, RetryInterval: time.Second, EntryTTL: time.Hour},
	}
}

func TestInitBroadcast(t *testing.T) {
	tests := []struct {
		name         string
		transport    string
		embedded     bool
		walEnabled   bool
		wantNATS     bool
		wantRetry    bool
		wantName     string
	}{
		{"memory without WAL", config.TransportMemory, false, false, false, false, config.TransportMemory},
		{"memory with WAL", config.TransportMemory, false, true, false, true, config.TransportMemory},
		{"embedded NATS ignored for memory", config.TransportMemory, true, false, false, false, config.TransportMemory},
		{"NATS with embedded server", config.TransportNATS, true, true, true, true, config.TransportNATS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Broadcast.Transport = tt.transport
			cfg.NATS.EmbeddedServer = tt.embedded
			cfg.WAL.Enabled = tt.walEnabled

			c, err := InitBroadcast(cfg)
			if err != nil {
				t.Fatalf("InitBroadcast() error = %v", err)
			}
			defer func() {
				if err := c.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}()

			if got := c.transport.Name(); got != tt.wantName {
				t.Errorf("transport = %q, want %q", got, tt.wantName)
			}
			if (c.natsServer != nil) != tt.wantNATS {
				t.Errorf("embedded NATS = %v, want %v", c.natsServer != nil, tt.wantNATS)
			}
			if (c.retryLoop != nil) != tt.wantRetry {
				t.Errorf("retry loop = %v, want %v", c.retryLoop != nil, tt.wantRetry)
			}
			if c.publisher == nil || c.breaker == nil {
				t.Error("publisher or breaker missing")
			}
		})
	}
}

func TestInitBroadcast_UnknownTransport(t *testing.T) {
	cfg := testConfig()
	cfg.Broadcast.Transport = "carrier-pigeon"
	if c, err := InitBroadcast(cfg); err == nil || c != nil {
		t.Errorf("InitBroadcast() = %v, %v, want error", c, err)
	}
}
