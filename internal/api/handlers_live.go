// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/pavoi/hudson/internal/logging"
	ws "github.com/pavoi/hudson/internal/websocket"
)

// Live upgrades to a websocket for one product set
//
// @Summary Live view connection
// @Description Upgrades to a WebSocket. The first frame is initial_state; state_changed and ui_toggled
// @Description frames follow. role=controller may send every action, role=host (default) only ui_toggle and ping.
// @Tags Realtime
// @Param setID path int true "Product set ID"
// @Param role query string false "controller or host"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} APIResponse "Unknown role"
// @Failure 404 {object} APIResponse "Product set not found"
// @Failure 503 {object} APIResponse "Realtime service unavailable"
// @Router /product-sets/{setID}/live [get]
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	role, err := ws.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if h.wsHub == nil || !h.wsHub.IsRunning() {
		logging.Warn().Msg("WebSocket connection rejected: hub not running")
		NewResponseWriter(w, r).ServiceUnavailable("Realtime service unavailable")
		return
	}
	if _, err := h.db.ProductSetBrand(r.Context(), setID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	// Register before loading the snapshot so no broadcast committed after the
	// load can be missed. Older ones are dropped by version.
	client := ws.NewClient(h.wsHub, conn, setID, role)
	if err := h.wsHub.Register(client); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int64("product_set_id", setID).Msg("WebSocket register failed")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "realtime service unavailable"))
		_ = conn.Close()
		return
	}

	// Without an initial_state the client would hold every broadcast forever.
	// Close instead so the view reconnects and loads a fresh snapshot.
	live, err := h.live.GetLiveState(r.Context(), setID)
	if err == nil {
		err = client.SendInitial(live)
	}
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int64("product_set_id", setID).Msg("WebSocket initial state failed")
		h.wsHub.Unregister(client)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "initial state unavailable"))
		_ = conn.Close()
		return
	}
	client.Start()
}
