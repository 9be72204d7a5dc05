// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package main provides the Hudson HTTP server
//
// @title Hudson API
// @version 1.0
// @description Live product-set control for livestream shopping. A producer drives the
// @description current product, image and host message of a product set; every connected
// @description host view receives the new state over a websocket.
// @description
// @description ## Live channel
// @description
// @description `GET /product-sets/{setID}/live?role=controller|host` upgrades to a websocket.
// @description The first frame is `initial_state`; later frames are `state_changed` and
// @description `ui_toggled`. Controllers may send actions over the same socket.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "END_OF_PRODUCT_SET",
// @description     "message": "Already at the last product"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-10-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:4000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health, readiness and metrics
//
// @tag.name Catalog
// @tag.description Brands, products, images and message presets
//
// @tag.name Product Sets
// @tag.description Product sets and their ordered entries
//
// @tag.name Live State
// @tag.description Navigation, images, host messages and UI toggles of a live product set
package main
