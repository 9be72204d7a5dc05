// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"

	"github.com/pavoi/hudson/internal/models"
)

// CreateProductSet creates an empty product set
//
// @Summary Create product set
// @Tags Product Sets
// @Accept json
// @Produce json
// @Param brandID path int true "Brand ID"
// @Param set body CreateProductSetRequest true "Product set"
// @Success 201 {object} APIResponse{data=models.ProductSet}
// @Failure 404 {object} APIResponse "Brand not found"
// @Failure 409 {object} APIResponse "Slug already in use"
// @Router /brands/{brandID}/product-sets [post]
func (h *Handler) CreateProductSet(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	var req CreateProductSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set := &models.ProductSet{BrandID: brandID, Name: req.Name, Slug: req.Slug, Notes: req.Notes}
	if err := h.db.CreateProductSet(r.Context(), set); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(set)
}

// ListProductSets lists a brand's product sets
//
// @Summary List product sets
// @Tags Product Sets
// @Produce json
// @Param brandID path int true "Brand ID"
// @Success 200 {object} APIResponse{data=[]models.ProductSet}
// @Router /brands/{brandID}/product-sets [get]
func (h *Handler) ListProductSets(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	sets, err := h.db.ListProductSets(r.Context(), brandID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(sets, len(sets))
}

// GetProductSet returns a product set with its entries
//
// @Summary Get product set
// @Tags Product Sets
// @Produce json
// @Param setID path int true "Product set ID"
// @Success 200 {object} APIResponse{data=models.ProductSet}
// @Failure 404 {object} APIResponse "Product set not found"
// @Router /product-sets/{setID} [get]
func (h *Handler) GetProductSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	set, err := h.db.GetProductSet(r.Context(), setID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(set)
}

// DeleteProductSet deletes a product set with its entries and state
//
// @Summary Delete product set
// @Tags Product Sets
// @Param setID path int true "Product set ID"
// @Success 204
// @Failure 404 {object} APIResponse "Product set not found"
// @Router /product-sets/{setID} [delete]
func (h *Handler) DeleteProductSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	if err := h.db.DeleteProductSet(r.Context(), setID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// AddEntry appends a product to a set
//
// @Summary Add entry
// @Tags Product Sets
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param entry body AddEntryRequest true "Product to add"
// @Success 201 {object} APIResponse{data=models.ProductSetEntry}
// @Failure 404 {object} APIResponse "Product set or product not found"
// @Failure 409 {object} APIResponse "Product already in set"
// @Router /product-sets/{setID}/entries [post]
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	var req AddEntryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.live.AddEntry(r.Context(), setID, req.ProductID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(entry)
}

// ReorderEntries sets the order of every entry in a set
//
// @Summary Reorder entries
// @Description entry_ids must list every entry of the set exactly once.
// @Tags Product Sets
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param order body ReorderEntriesRequest true "New order"
// @Success 200 {object} APIResponse{data=[]models.ProductSetEntry}
// @Failure 422 {object} APIResponse "Order does not match the set"
// @Router /product-sets/{setID}/entries/order [put]
func (h *Handler) ReorderEntries(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	var req ReorderEntriesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.live.ReorderEntries(r.Context(), setID, req.EntryIDs); err != nil {
		respondServiceError(w, r, err)
		return
	}
	entries, err := h.db.ListEntries(r.Context(), setID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(entries, len(entries))
}

// UpdateEntry sets or clears an entry's overrides
//
// @Summary Update entry overrides
// @Tags Product Sets
// @Accept json
// @Produce json
// @Param setID path int true "Product set ID"
// @Param entryID path int true "Entry ID"
// @Param overrides body models.EntryOverrides true "Overrides"
// @Success 200 {object} APIResponse{data=models.ProductSetEntry}
// @Failure 404 {object} APIResponse "Entry not found"
// @Router /product-sets/{setID}/entries/{entryID} [patch]
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	var req models.EntryOverrides
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.live.UpdateEntry(r.Context(), setID, entryID, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(entry)
}

// RemoveEntry removes an entry and compacts positions
//
// @Summary Remove entry
// @Description Removing the live entry leaves the state with no current entry.
// @Tags Product Sets
// @Produce json
// @Param setID path int true "Product set ID"
// @Param entryID path int true "Entry ID"
// @Success 200 {object} APIResponse{data=RemoveEntryResponse}
// @Failure 404 {object} APIResponse "Entry not found"
// @Router /product-sets/{setID}/entries/{entryID} [delete]
func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "setID")
	if !ok {
		return
	}
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}

	cleared, err := h.live.RemoveEntry(r.Context(), setID, entryID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(RemoveEntryResponse{EntryID: entryID, ClearedCurrent: cleared})
}
