// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"

	"github.com/pavoi/hudson/internal/models"
)

// CreateBrand creates a brand
//
// @Summary Create brand
// @Tags Catalog
// @Accept json
// @Produce json
// @Param brand body CreateBrandRequest true "Brand"
// @Success 201 {object} APIResponse{data=models.Brand}
// @Failure 409 {object} APIResponse "Slug already in use"
// @Failure 422 {object} APIResponse "Validation failed"
// @Router /brands [post]
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	brand := &models.Brand{Name: req.Name, Slug: req.Slug}
	if err := h.db.CreateBrand(r.Context(), brand); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(brand)
}

// ListBrands lists brands
//
// @Summary List brands
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.Brand}
// @Router /brands [get]
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.db.ListBrands(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(brands, len(brands))
}

// CreateProduct creates a product with its images
//
// @Summary Create product
// @Description Images are stored in request order; the first image has index 0.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param brandID path int true "Brand ID"
// @Param product body CreateProductRequest true "Product"
// @Success 201 {object} APIResponse{data=models.Product}
// @Failure 404 {object} APIResponse "Brand not found"
// @Failure 422 {object} APIResponse "Validation failed"
// @Router /brands/{brandID}/products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	var req CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product := &models.Product{
		BrandID:            brandID,
		Name:               req.Name,
		TalkingPoints:      req.TalkingPoints,
		OriginalPriceCents: req.OriginalPriceCents,
		SalePriceCents:     req.SalePriceCents,
		Images:             make([]models.ProductImage, 0, len(req.Images)),
	}
	for _, img := range req.Images {
		product.Images = append(product.Images, models.ProductImage{URL: img.URL, AltText: img.AltText})
	}

	if err := h.db.CreateProduct(r.Context(), product); err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(product)
}

// ListProducts lists a brand's products
//
// @Summary List products
// @Tags Catalog
// @Produce json
// @Param brandID path int true "Brand ID"
// @Success 200 {object} APIResponse{data=[]models.Product}
// @Failure 404 {object} APIResponse "Brand not found"
// @Router /brands/{brandID}/products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	brandID, ok := pathID(w, r, "brandID")
	if !ok {
		return
	}
	products, err := h.db.ListProducts(r.Context(), brandID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(products, len(products))
}
