// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages written into error response
// bodies, so the wording stays the same across handlers.
package app

const (
	MsgInvalidJSON         = "request body is not valid JSON"
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is shared by unknown email, wrong password and
	// inactive accounts.
	MsgInvalidCredentials = "invalid email or password"

	MsgAccountLocked       = "account is temporarily locked"
	MsgEmailInUse          = "email is already registered"
	MsgDuplicateInFlight   = "identical request is already in progress"
	MsgUnauthenticated     = "authentication required"
	MsgInternalServerError = "internal server error"
)
