// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates missing database settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid token or environment settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAuthConfigs indicates an invalid session or lockout policy.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidCookieConfigs indicates invalid session cookie settings.
	ErrInvalidCookieConfigs = errors.New("invalid cookie configuration")
	// ErrInvalidServerConfigs indicates a missing address or request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates an empty cleanup schedule.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
