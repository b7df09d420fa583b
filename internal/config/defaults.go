// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values used for every setting left unset by all sources.
const (
	DefaultIdleTimeout            = 30 * time.Minute
	DefaultLockoutThreshold       = 5
	DefaultLockoutDuration        = 15 * time.Minute
	DefaultSessionCleanupGrace    = 10 * time.Minute
	DefaultCookieName             = "medtrack_session"
	DefaultTokenIssuer            = "go-med-tracker"
	DefaultTokenDuration          = 24 * time.Hour
	DefaultHTTPAddress            = "localhost:8080"
	DefaultRequestTimeout         = 30 * time.Second
	DefaultSessionCleanupSchedule = "@every 5m"
	DefaultEnvironment            = EnvDevelopment
	DefaultLogLevel               = "debug"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			Environment:   DefaultEnvironment,
			LogLevel:      DefaultLogLevel,
		},
		Auth: Auth{
			IdleTimeout:         DefaultIdleTimeout,
			LockoutThreshold:    DefaultLockoutThreshold,
			LockoutDuration:     DefaultLockoutDuration,
			SessionCleanupGrace: DefaultSessionCleanupGrace,
		},
		Cookie: Cookie{
			Name: DefaultCookieName,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionCleanupSchedule: DefaultSessionCleanupSchedule,
		},
	}
}

// harden applies settings derived from the environment.
func (cfg *StructuredConfig) harden() {
	if cfg.IsProduction() {
		cfg.Cookie.Secure = true
		cfg.Cookie.Strict = true
	}
}
