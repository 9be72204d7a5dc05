// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Broadcast BroadcastConfig `koanf:"broadcast"`
	NATS      NATSConfig      `koanf:"nats"`
	WAL       WALConfig       `koanf:"wal"`
	WebSocket WebSocketConfig `koanf:"websocket"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	// Driver is duckdb (embedded, single instance) or postgres (shared by many instances).
	Driver string `koanf:"driver"`

	// Path is the DuckDB file. ":memory:" keeps everything in RAM.
	Path string `koanf:"path"`

	// DSN is the PostgreSQL connection string (postgres driver only).
	DSN string `koanf:"dsn"`

	// MaxMemory and Threads are DuckDB tuning knobs. Threads 0 means runtime.NumCPU().
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// Broadcast transports.
const (
	TransportMemory = "memory"
	TransportNATS   = "nats"
)

// BroadcastConfig controls the pub/sub layer that fans state out to views.
type BroadcastConfig struct {
	// Transport is memory (single process) or nats (fan-out across instances).
	Transport string `koanf:"transport"`

	OutputBuffer   int64         `koanf:"output_buffer"`
	PublishTimeout time.Duration `koanf:"publish_timeout"`

	BreakerMaxRequests      uint32        `koanf:"breaker_max_requests"`
	BreakerInterval         time.Duration `koanf:"breaker_interval"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
}

// NATSConfig holds NATS client and embedded server settings.
type NATSConfig struct {
	URL            string        `koanf:"url"`
	EmbeddedServer bool          `koanf:"embedded_server"`
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	StoreDir       string        `koanf:"store_dir"`
	MaxReconnects  int           `koanf:"max_reconnects"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
}

// WALConfig controls the BadgerDB log of undelivered state broadcasts.
type WALConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Path          string        `koanf:"path"`
	InMemory      bool          `koanf:"in_memory"`
	SyncWrites    bool          `koanf:"sync_writes"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	EntryTTL      time.Duration `koanf:"entry_ttl"`
}

// WebSocketConfig tunes live view connections.
type WebSocketConfig struct {
	SendBuffer   int     `koanf:"send_buffer"`
	InboundRate  float64 `koanf:"inbound_rate"` // actions per second per connection
	InboundBurst int     `koanf:"inbound_burst"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// Load reads the layered configuration and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
