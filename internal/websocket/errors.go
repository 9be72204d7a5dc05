// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package websocket

import (
	"errors"

	"github.com/pavoi/hudson/internal/models"
)

var (
	// ErrHubNotRunning is returned by Register before the hub runs or after it stopped.
	ErrHubNotRunning = errors.New("websocket hub is not running")

	ErrMalformedAction = errors.New("malformed action")
	ErrUnknownAction   = errors.New("unknown action")
	ErrForbiddenAction = errors.New("action not allowed for this role")
	ErrRateLimited     = errors.New("too many actions")
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrMalformedAction):
		return "MALFORMED_ACTION"
	case errors.Is(err, ErrUnknownAction):
		return "UNKNOWN_ACTION"
	case errors.Is(err, ErrForbiddenAction):
		return "FORBIDDEN_ACTION"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	default:
		return models.ErrorCode(err)
	}
}
