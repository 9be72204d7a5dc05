// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"

	"github.com/pavoi/hudson/internal/models"
)

// CreatePreset appends a message preset to a brand
//
// @Summary Create message preset
// @Tags Presets
// @Accept json
// @Produce json
// @Param brandID path int true "Brand ID"
// @Param preset body CreatePresetRequest true "Preset"
// @Success 201 {object} APIResponse{data=models.MessagePreset}
// @Failure 404 {object} APIResponse "Brand not found"
// @Failure 422 {object} APIResponse "Validation failed"
// @Router /brands/{brandID}/message-presets [post]
func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	var req CreatePresetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	preset := &models.MessagePreset{BrandID: brandID, Text: req.Text, Color: req.Color}
	if err := h.db.CreatePreset(r.Context(), preset); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(preset)
}

// ListPresets lists a brand's presets in position order
//
// @Summary List message presets
// @Tags Presets
// @Produce json
// @Param brandID path int true "Brand ID"
// @Success 200 {object} APIResponse{data=[]models.MessagePreset}
// @Router /brands/{brandID}/message-presets [get]
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	presets, err := h.db.ListPresets(r.Context(), brandID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(presets, len(presets))
}

// DeletePreset deletes a message preset
//
// @Summary Delete message preset
// @Tags Presets
// @Param presetID path int true "Preset ID"
// @Success 204
// @Failure 404 {object} APIResponse "Preset not found"
// @Router /message-presets/{presetID} [delete]
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	presetID, ok := pathID(w, r, "presetID")
	if !ok {
		return
	}
	if err := h.db.DeletePreset(r.Context(), presetID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
