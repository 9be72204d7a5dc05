// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sony/gobreaker/v2"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/database"
	"github.com/pavoi/hudson/internal/liveset"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/wal"
	ws "github.com/pavoi/hudson/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, websocket upgrader
//   - handlers_helpers.go: body decoding and path parameters
//   - handlers_health.go: health probes
//   - handlers_catalog.go: brands and products
//   - handlers_product_sets.go: product sets and entries
//   - handlers_presets.go: message presets
//   - handlers_state.go: live state operations and UI toggles
//   - handlers_live.go: the realtime websocket endpoint
type Handler struct {
	db        *database.DB
	live      *liveset.Service
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time

	// Broadcast health, set after the transport is built.
	transport string
	breaker   *gobreaker.CircuitBreaker[interface{}]
	wal       *wal.Store
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - db: catalog and product set storage
//   - live: the live state service every state endpoint goes through
//   - wsHub: the hub live views register with
//   - cfg: application configuration (CORS origins for the upgrader)
func NewHandler(db *database.DB, live *liveset.Service, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		live:      live,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// SetBroadcastHealth wires the broadcast components reported by /health.
// The WAL may be nil when it is disabled.
func (h *Handler) SetBroadcastHealth(transport string, breaker *gobreaker.CircuitBreaker[interface{}], store *wal.Store) {
	h.transport = transport
	h.breaker = breaker
	h.wal = store
}

// getUpgrader creates a WebSocket upgrader with origin checking and a handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin. Its absence means a non-browser client,
	// which is only accepted in development.
	if origin == "" {
		if h.config != nil && h.config.IsDevelopment() {
			return true
		}
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
