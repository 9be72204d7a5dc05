// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"
	"time"

	"github.com/pavoi/hudson/internal/broadcast"
)

// Version is reported by /health. Set at build time with -ldflags.
var Version = "dev"

// HealthStatus is the body of /health.
type HealthStatus struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Uptime    float64         `json:"uptime_seconds"`
	Database  DatabaseHealth  `json:"database"`
	Broadcast BroadcastHealth `json:"broadcast"`
	WebSocket WebSocketHealth `json:"websocket"`
}

// DatabaseHealth reports the store.
type DatabaseHealth struct {
	Driver    string `json:"driver"`
	Connected bool   `json:"connected"`
}

// BroadcastHealth reports the broadcast transport, breaker and WAL.
type BroadcastHealth struct {
	Transport  string `json:"transport"`
	Breaker    string `json:"breaker"`
	WALEnabled bool   `json:"wal_enabled"`
	WALPending int64  `json:"wal_pending"`
}

// WebSocketHealth reports the hub.
type WebSocketHealth struct {
	Running bool `json:"running"`
	Clients int  `json:"clients"`
	Topics  int  `json:"topics"`
}

func (h *Handler) healthStatus(r *http.Request) HealthStatus {
	hs := HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	if h.db != nil {
		hs.Database.Driver = h.db.Driver()
		hs.Database.Connected = h.db.Ping(r.Context()) == nil
	}

	hs.Broadcast.Transport = h.transport
	if h.breaker != nil {
		hs.Broadcast.Breaker = broadcast.BreakerState(h.breaker)
	}
	if h.wal != nil {
		hs.Broadcast.WALEnabled = true
		hs.Broadcast.WALPending = h.wal.Stats().PendingCount
	}

	if h.wsHub != nil {
		hs.WebSocket.Running = h.wsHub.IsRunning()
		hs.WebSocket.Clients = h.wsHub.GetClientCount()
		hs.WebSocket.Topics = h.wsHub.GetTopicCount()
	}

	if !hs.Database.Connected || !hs.WebSocket.Running || hs.Broadcast.Breaker == "open" {
		hs.Status = "degraded"
	}
	return hs
}

// Health handles health check requests
//
// @Summary Get system health status
// @Description Reports store connectivity, broadcast transport and breaker state, WAL backlog and websocket hub status.
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus(r))
}

// HealthLive handles liveness probe requests (Kubernetes-style)
//
// @Summary Kubernetes liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 only when the store answers and the hub accepts views.
//
// @Summary Kubernetes readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	hs := h.healthStatus(r)
	if !hs.Database.Connected || !hs.WebSocket.Running {
		NewResponseWriter(w, r).ServiceUnavailable("not ready")
		return
	}
	NewResponseWriter(w, r).Success(map[string]interface{}{"ready": true})
}
