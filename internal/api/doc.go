// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package api provides the HTTP REST API layer for Hudson.

The API covers the catalog a live session is built from, the product sets and
their entries, brand message presets, the live state operations and the
realtime endpoint that live views connect to.

Key Components:

  - Router: chi route table and middleware stack (SetupChi)
  - Handler: request handlers, split by resource across handlers_*.go
  - ResponseWriter: the {success, data, error, meta} envelope
  - respondServiceError: maps domain errors onto HTTP status and error codes

API Categories:

1. Catalog (/api/v1/brands):
  - Brands and their products with images
  - Product sets and message presets scoped to a brand

2. Product sets (/api/v1/product-sets/{setID}):
  - Set details with entries
  - Entry add, reorder, override and removal

3. Live state (/api/v1/product-sets/{setID}/state):
  - Load or initialize, jump, next, previous
  - Image cycling and selection
  - Host messages, free text or from a preset

4. Realtime (/api/v1/product-sets/{setID}/live):
  - WebSocket upgrade for controller and host views (see package websocket)

5. Operations:
  - /health, /health/live, /health/ready
  - /metrics (Prometheus)
  - /swagger/* (OpenAPI UI)

Error Mapping:

	range and validation errors  → 422 (INVALID_POSITION, END_OF_PRODUCT_SET,
	                                    START_OF_PRODUCT_SET, VALIDATION_ERROR)
	not found                    → 404 NOT_FOUND
	uniqueness conflicts         → 409 CONFLICT
	broadcast unavailable        → 503 BROADCAST_UNAVAILABLE
	anything else                → 500 DATABASE_ERROR

Every state mutation is broadcast to the set's live views by the liveset
service. A broadcast failure after commit does not fail the request.
*/
package api
