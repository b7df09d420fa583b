// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. All violations are reported
// together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs))
	}

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	}
	switch cfg.App.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment))
	}

	if cfg.Auth.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: idle timeout must be positive", ErrInvalidAuthConfigs))
	}
	if cfg.Auth.LockoutThreshold < 1 {
		errs = append(errs, fmt.Errorf("%w: lockout threshold must be at least 1", ErrInvalidAuthConfigs))
	}
	if cfg.Auth.LockoutDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: lockout duration must be positive", ErrInvalidAuthConfigs))
	}
	if cfg.Auth.SessionCleanupGrace < 0 {
		errs = append(errs, fmt.Errorf("%w: cleanup grace must not be negative", ErrInvalidAuthConfigs))
	}

	if cfg.Cookie.Name == "" {
		errs = append(errs, fmt.Errorf("%w: cookie name is required", ErrInvalidCookieConfigs))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if cfg.Workers.SessionCleanupSchedule == "" {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
