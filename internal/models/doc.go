// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package models defines the data structures shared by Hudson's store, live-state
service, broadcast transport and HTTP API.

Catalog (read-mostly while a session is live):

  - Brand: owner of products, product sets and message presets
  - Product, ProductImage: catalog items and their ordered images

Session control:

  - ProductSet, ProductSetEntry: the ordered products curated for one live session
  - ProductSetState: the single mutable row per set (current entry, image index, host message)
  - MessagePreset: brand-scoped canned host messages
  - LiveState, LiveEntry: the resolved snapshot broadcast to every connected view

Broadcast:

  - StateTopic / UITopic: "product_set:{id}:state" and "product_set:{id}:ui"
  - BroadcastEvent: transport payload; UIToggle: ephemeral ui message

Sentinel errors in errors.go are grouped by class (range, not-found, conflict) and
are matched with errors.Is by the service and API layers.
*/
package models
