// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package logging provides the zerolog-based structured logger used across Hudson.
//
// A single global logger is configured once at startup from the logging section
// of the configuration and then used through package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int64("product_set_id", id).Msg("State initialized")
//
// Request-scoped fields (request_id, correlation_id) travel on the context and
// are attached by Ctx:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Jump rejected")
//
// Two adapters let third-party components write through the same logger:
//
//   - NewSlogLogger returns an *slog.Logger for the suture supervisor tree (sutureslog).
//   - NewWatermillLogger returns a watermill.LoggerAdapter for the broadcast transport.
//
// Always terminate event chains with Msg or Send; an unterminated event is never written.
package logging
