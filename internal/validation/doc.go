// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package validation wraps go-playground/validator v10 with a process-wide
// validator instance, Hudson's custom tags and readable error messages.
//
// Custom tags:
//
//   - palette: the value is a host message color from models.Palette
//   - slug: lowercase letters, digits and single dashes (e.g. "spring-drop-2026")
//
// Usage:
//
//	type sendMessageRequest struct {
//	    Text  string `json:"text" validate:"required,max=500"`
//	    Color string `json:"color" validate:"required,palette"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation
