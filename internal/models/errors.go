// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package models

import "errors"

// Range errors. Recoverable: the state is left unchanged and the operator is notified.
var (
	ErrInvalidPosition   = errors.New("invalid_position")
	ErrEndOfProductSet   = errors.New("end_of_product_set")
	ErrStartOfProductSet = errors.New("start_of_product_set")
	ErrInvalidMessage    = errors.New("invalid_message")
	ErrInvalidDirection  = errors.New("invalid_direction")
	ErrInvalidOrder      = errors.New("entry order must list every entry of the set exactly once")
	ErrInvalidToggle     = errors.New("invalid_toggle")
)

// Not-found errors.
var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductSetNotFound = errors.New("product set not found")
	ErrEntryNotFound      = errors.New("product set entry not found")
	ErrPresetNotFound     = errors.New("message preset not found")
	ErrStateNotFound      = errors.New("product set state not found")
)

// Conflict errors raised by uniqueness rules.
var (
	ErrSlugTaken           = errors.New("slug already in use")
	ErrProductAlreadyInSet = errors.New("product already in product set")
)

// ErrBroadcastUnavailable is returned when an ephemeral message could not be
// handed to the broadcast transport. State mutations never return it.
var ErrBroadcastUnavailable = errors.New("broadcast transport unavailable")

// IsRangeError reports whether err is a recoverable range/validation failure.
func IsRangeError(err error) bool {
	return errors.Is(err, ErrInvalidPosition) ||
		errors.Is(err, ErrEndOfProductSet) ||
		errors.Is(err, ErrStartOfProductSet) ||
		errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrInvalidToggle)
}

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBrandNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrProductSetNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrPresetNotFound) ||
		errors.Is(err, ErrStateNotFound)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugTaken) ||
		errors.Is(err, ErrProductAlreadyInSet)
}

// Wire error codes shared by the HTTP API and live view error frames.
const (
	CodeInvalidPosition      = "INVALID_POSITION"
	CodeEndOfProductSet      = "END_OF_PRODUCT_SET"
	CodeStartOfProductSet    = "START_OF_PRODUCT_SET"
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeBroadcastUnavailable = "BROADCAST_UNAVAILABLE"
	CodeDatabase             = "DATABASE_ERROR"
)

// ErrorCode maps err onto its wire code. Anything unrecognized is a storage failure.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPosition):
		return CodeInvalidPosition
	case errors.Is(err, ErrEndOfProductSet):
		return CodeEndOfProductSet
	case errors.Is(err, ErrStartOfProductSet):
		return CodeStartOfProductSet
	case IsRangeError(err):
		return CodeValidation
	case IsNotFound(err):
		return CodeNotFound
	case IsConflict(err):
		return CodeConflict
	case errors.Is(err, ErrBroadcastUnavailable):
		return CodeBroadcastUnavailable
	default:
		return CodeDatabase
	}
}
