// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"errors"
	"net/http"

	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/models"
)

// ErrInvalidID is returned for a path ID that is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// statusFor maps a domain error onto its HTTP status.
func statusFor(err error) int {
	switch {
	case models.IsRangeError(err):
		return http.StatusUnprocessableEntity
	case models.IsNotFound(err):
		return http.StatusNotFound
	case models.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, models.ErrBroadcastUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err in the envelope. Storage failures are logged
// and their text is not returned to the caller.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := models.ErrorCode(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API request failed")
		message = "A database error occurred"
	}

	NewResponseWriter(w, r).Error(status, code, message)
}
