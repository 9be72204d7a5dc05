// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"context"
	"net/http"

	"github.com/pavoi/hudson/internal/models"
)

type stateOp func(ctx context.Context, setID int64) (*models.LiveState, error)

// serveState runs op for the set in the URL and writes the resulting live state.
func (h *Handler) serveState(w http.ResponseWriter, r *http.Request, op stateOp) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	live, err := op(r.Context(), setID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(live)
}

// GetState loads the live state, initializing it on first use
//
// @Summary Get live state
// @Tags Live State
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 404 {object} APIResponse "Product set not found"
// @Router /product-sets/{setID}/state [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.serveState(w, r, h.live.GetLiveState)
}

// InitializeState creates the state row if missing
//
// @Summary Initialize live state
// @Tags Live State
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Router /product-sets/{setID}/state/init [post]
func (h *Handler) InitializeState(w http.ResponseWriter, r *http.Request) {
	h.serveState(w, r, h.live.InitializeState)
}

// JumpToProduct makes the entry at a 1-based position live
//
// @Summary Jump to position
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body JumpRequest true "Position"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 422 {object} APIResponse "INVALID_POSITION"
// @Router /product-sets/{setID}/state/jump [post]
func (h *Handler) JumpToProduct(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.serveState(w, r, func(ctx context.Context, setID int64) (*models.LiveState, error) {
		return h.live.JumpToProduct(ctx, setID, *req.Position)
	})
}

// NextProduct advances to the next entry
//
// @Summary Next product
// @Tags Live State
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 422 {object} APIResponse "END_OF_PRODUCT_SET"
// @Router /product-sets/{setID}/state/next [post]
func (h *Handler) NextProduct(w http.ResponseWriter, r *http.Request) {
	h.serveState(w, r, h.live.AdvanceToNextProduct)
}

// PreviousProduct goes back to the previous entry
//
// @Summary Previous product
// @Tags Live State
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 422 {object} APIResponse "START_OF_PRODUCT_SET"
// @Router /product-sets/{setID}/state/previous [post]
func (h *Handler) PreviousProduct(w http.ResponseWriter, r *http.Request) {
	h.serveState(w, r, h.live.GoToPreviousProduct)
}

// CycleImage moves to the next or previous image of the live entry, wrapping around
//
// @Summary Cycle image
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body CycleImageRequest true "Direction (next or previous)"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 422 {object} APIResponse "VALIDATION_ERROR"
// @Router /product-sets/{setID}/state/image/cycle [post]
func (h *Handler) CycleImage(w http.ResponseWriter, r *http.Request) {
	var req CycleImageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.serveState(w, r, func(ctx context.Context, setID int64) (*models.LiveState, error) {
		return h.live.CycleProductImage(ctx, setID, req.Direction)
	})
}

// SetImage selects an image of the live entry by 0-based index
//
// @Summary Set image index
// @Description An index outside the live entry's images leaves the state unchanged.
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body SetImageRequest true "Index"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Router /product-sets/{setID}/state/image [put]
func (h *Handler) SetImage(w http.ResponseWriter, r *http.Request) {
	var req SetImageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.serveState(w, r, func(ctx context.Context, setID int64) (*models.LiveState, error) {
		return h.live.SetImageIndex(ctx, setID, *req.Index)
	})
}

// SendMessage shows a message to the host
//
// @Summary Send host message
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body SendMessageRequest true "Message"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 422 {object} APIResponse "VALIDATION_ERROR"
// @Router /product-sets/{setID}/state/message [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.serveState(w, r, func(ctx context.Context, setID int64) (*models.LiveState, error) {
		return h.live.SendHostMessage(ctx, setID, req.Text, req.Color)
	})
}

// SendPreset shows a brand preset to the host
//
// @Summary Send preset message
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body SendPresetRequest true "Preset"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Failure 404 {object} APIResponse "Preset not found for this set's brand"
// @Router /product-sets/{setID}/state/message/preset [post]
func (h *Handler) SendPreset(w http.ResponseWriter, r *http.Request) {
	var req SendPresetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.serveState(w, r, func(ctx context.Context, setID int64) (*models.LiveState, error) {
		return h.live.SendPresetMessage(ctx, setID, req.PresetID)
	})
}

// ClearMessage removes the host message
//
// @Summary Clear host message
// @Tags Live State
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.LiveState}
// @Router /product-sets/{setID}/state/message [delete]
func (h *Handler) ClearMessage(w http.ResponseWriter, r *http.Request) {
	h.serveState(w, r, h.live.ClearHostMessage)
}

// SetUIToggle broadcasts an ephemeral view flag to every live view of the set
//
// @Summary Set UI toggle
// @Description Toggles are not persisted. Views that connect later do not see them.
// @Tags Live State
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param body body UIToggleRequest true "Toggle"
// @Success 200 {object} APIResponse{data=models.UIToggle}
// @Failure 503 {object} APIResponse "BROADCAST_UNAVAILABLE"
// @Router /product-sets/{setID}/ui [post]
func (h *Handler) SetUIToggle(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	var req UIToggleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	toggle, err := h.live.SetUIToggle(r.Context(), setID, req.Key, *req.Value)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(toggle)
}
