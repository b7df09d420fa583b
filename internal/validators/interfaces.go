// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the auth services.
//
// Failures are returned as *FieldError so the transport can name the
// offending field in its 400 response.
package validators

import "context"

// Validator validates obj, optionally only the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
