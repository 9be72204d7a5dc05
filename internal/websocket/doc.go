// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package websocket connects live views (controller and host) to the broadcast
layer.

Key Components:

  - Hub: tracks clients and the broadcast topics they listen on. Each topic
    with at least one local client has exactly one transport subscription;
    it is dropped when the last client of the topic leaves.
  - Client: one WebSocket connection with a read pump (actions in) and a
    write pump (frames out).
  - Frame / Action: the JSON wire format.

Architecture:

	 broadcast transport (gochannel or NATS)
	        │ product_set:{id}:state / :ui
	   ┌────┴─────┐
	   │   Hub    │  one subscription per topic
	   └────┬─────┘
	  ┌─────┼──────────┐
	Client Client    Client     (controller / host views of the set)

A client joins the two topics of its product set before the live state is
loaded, then receives initial_state. Broadcasts that arrive in between are
held and only forwarded if newer than the initial snapshot. After that every
state_changed frame carries a version greater than the previous one; older
snapshots are dropped.

Frames sent to views:

	{"type":"initial_state","version":4,"data":{...LiveState}}
	{"type":"state_changed","version":5,"data":{...LiveState}}
	{"type":"ui_toggled","data":{"key":"notes","value":true,...}}
	{"type":"ack","request_id":"r1"}
	{"type":"error","request_id":"r2","error":{"code":"END_OF_PRODUCT_SET","message":"..."}}

Actions sent by views:

	{"type":"jump","position":3,"request_id":"r1"}
	{"type":"next"} {"type":"previous"}
	{"type":"cycle_image","direction":"next"}
	{"type":"set_image","index":2}
	{"type":"send_message","text":"Link in bio","color":"blue"}
	{"type":"send_preset","preset_id":7}
	{"type":"clear_message"} {"type":"init"}
	{"type":"ui_toggle","key":"notes","value":true}
	{"type":"ping"}

Host views may only send ui_toggle and ping. Inbound actions are rate limited
per connection with golang.org/x/time/rate.
*/
package websocket
