// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the credential verifier: one-way password
// hashing and constant-time verification.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes and verifies user passwords.
//
// Hashes are self-describing strings (algorithm, parameters, salt and
// digest), so parameters can be tuned without invalidating stored hashes.
type PasswordHasher interface {
	// Hash derives a randomly-salted one-way hash of password.
	// It fails only when the system CSPRNG cannot be read.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash.
	// Malformed or foreign hashes yield false, never an error or panic.
	Verify(password, encodedHash string) bool
}
