// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pavoi/hudson/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Applied to ALL routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// ========================
		// Realtime
		// ========================
		// Outside the compressed group: the upgrade needs the raw connection.
		r.With(router.chiMiddleware.RateLimitWebSocket()).
			Get("/product-sets/{setID}/live", h.Live)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(APISecurityHeaders())
			r.Use(chimiddleware.Compress(5, "application/json"))

			// ========================
			// Catalog
			// ========================
			r.Route("/brands", func(r chi.Router) {
				r.Post("/", h.CreateBrand)
				r.Get("/", h.ListBrands)
				r.Route("/{brandID}", func(r chi.Router) {
					r.Post("/products", h.CreateProduct)
					r.Get("/products", h.ListProducts)
					r.Post("/product-sets", h.CreateProductSet)
					r.Get("/product-sets", h.ListProductSets)
					r.Post("/message-presets", h.CreatePreset)
					r.Get("/message-presets", h.ListPresets)
				})
			})

			r.Delete("/message-presets/{presetID}", h.DeletePreset)

			// ========================
			// Product Sets
			// ========================
			r.Route("/product-sets/{setID}", func(r chi.Router) {
				r.Get("/", h.GetProductSet)
				r.Delete("/", h.DeleteProductSet)

				r.Post("/entries", h.AddEntry)
				r.Put("/entries/order", h.ReorderEntries)
				r.Patch("/entries/{entryID}", h.UpdateEntry)
				r.Delete("/entries/{entryID}", h.RemoveEntry)

				// ========================
				// Live State
				// ========================
				r.Route("/state", func(r chi.Router) {
					r.Get("/", h.GetState)
					r.Post("/init", h.InitializeState)
					r.Post("/jump", h.JumpToProduct)
					r.Post("/next", h.NextProduct)
					r.Post("/previous", h.PreviousProduct)
					r.Post("/image/cycle", h.CycleImage)
					r.Put("/image", h.SetImage)
					r.Post("/message", h.SendMessage)
					r.Post("/message/preset", h.SendPreset)
					r.Delete("/message", h.ClearMessage)
				})

				r.Post("/ui", h.SetUIToggle)
			})
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
