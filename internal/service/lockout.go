// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/MKhiriev/go-med-tracker/models"
)

// LockoutPolicy is the brute-force lockout state machine over the
// failed_attempts and lock_until fields of a user.
//
// An account is Clear while lock_until is unset or in the past and Locked
// while now < lock_until. Every method works on a copy of the user and
// derives the next state from the state passed in, so callers must pass a
// freshly read row (locked FOR UPDATE during login).
type LockoutPolicy struct {
	threshold int
	duration  time.Duration
	clock     utils.Clock
}

// NewLockoutPolicy builds a policy from the auth configuration.
func NewLockoutPolicy(cfg config.Auth, clock utils.Clock) *LockoutPolicy {
	return &LockoutPolicy{
		threshold: cfg.LockoutThreshold,
		duration:  cfg.LockoutDuration,
		clock:     clock,
	}
}

// IsLocked reports whether user is locked right now.
func (p *LockoutPolicy) IsLocked(user models.User) bool {
	return isLockedAt(user, p.clock.Now())
}

// RegisterFailure applies one failed attempt and reports whether the account
// is locked afterwards.
//
// A locked account is left untouched. An expired lock is cleared first and
// the attempt counts as the first of a new series. Reaching the threshold
// locks the account for the configured duration and pins the counter at the
// threshold.
func (p *LockoutPolicy) RegisterFailure(user models.User) (models.User, bool) {
	now := p.clock.Now()

	if isLockedAt(user, now) {
		return user, true
	}

	if user.LockUntil != nil {
		user = clearLockout(user)
	}

	user.FailedAttempts++
	user.UpdatedAt = now

	if user.FailedAttempts >= p.threshold {
		until := now.Add(p.duration)
		user.LockUntil = &until
		user.FailedAttempts = p.threshold
		return user, true
	}

	return user, false
}

// RegisterSuccess resets the counter and drops an expired lock.
func (p *LockoutPolicy) RegisterSuccess(user models.User) models.User {
	user = clearLockout(user)
	user.UpdatedAt = p.clock.Now()
	return user
}

func isLockedAt(user models.User, now time.Time) bool {
	return user.LockUntil != nil && now.Before(*user.LockUntil)
}

func clearLockout(user models.User) models.User {
	user.FailedAttempts = 0
	user.LockUntil = nil
	return user
}
