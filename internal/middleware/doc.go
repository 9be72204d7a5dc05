// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and puts it, with a fresh
    correlation ID, on the logging context
  - PrometheusMetrics: request counts and latency labeled by chi route pattern

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Route patterns ("/api/v1/product-sets/{setID}/state") keep the metric label
cardinality bounded no matter how many product sets exist.
*/
package middleware
