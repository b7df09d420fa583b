// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2idPrefix = "argon2id"

var errMalformedHash = errors.New("malformed password hash")

// Argon2Params holds the Argon2id tuning parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Params follows the OWASP (2024) recommendation for Argon2id.
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024, // 64 MiB
	Threads: 4,
	KeyLen:  32, // 256 bits
	SaltLen: 16,
}

// argon2Hasher is the private implementation of [PasswordHasher].
type argon2Hasher struct {
	params Argon2Params
	random io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] using Argon2id with
// [DefaultArgon2Params].
func NewPasswordHasher() PasswordHasher {
	return NewPasswordHasherWithParams(DefaultArgon2Params)
}

// NewPasswordHasherWithParams constructs a [PasswordHasher] with custom
// Argon2id parameters (cheaper ones are handy in tests).
func NewPasswordHasherWithParams(params Argon2Params) PasswordHasher {
	return &argon2Hasher{
		params: params,
		random: rand.Reader,
	}
}

// Hash implements [PasswordHasher]. The result has the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
//
// where salt and digest are unpadded standard base64.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify implements [PasswordHasher]. The parameters stored in encodedHash
// are used for recomputation, not the receiver's.
func (h *argon2Hasher) Verify(password, encodedHash string) bool {
	params, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLen)

	return subtle.ConstantTimeCompare(digest, computed) == 1
}

// decodeHash splits a PHC-formatted Argon2id hash into its parameters,
// salt and digest.
func decodeHash(encodedHash string) (Argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, digest
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2idPrefix {
		return Argon2Params{}, nil, nil, errMalformedHash
	}

	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return Argon2Params{}, nil, nil, errMalformedHash
	}

	var params Argon2Params
	var memory, time uint64
	var threads uint64
	for _, kv := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return Argon2Params{}, nil, nil, errMalformedHash
		}

		var err error
		switch key {
		case "m":
			memory, err = strconv.ParseUint(value, 10, 32)
		case "t":
			time, err = strconv.ParseUint(value, 10, 32)
		case "p":
			threads, err = strconv.ParseUint(value, 10, 8)
		default:
			return Argon2Params{}, nil, nil, errMalformedHash
		}
		if err != nil {
			return Argon2Params{}, nil, nil, errMalformedHash
		}
	}
	if memory == 0 || time == 0 || threads == 0 {
		return Argon2Params{}, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Argon2Params{}, nil, nil, errMalformedHash
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return Argon2Params{}, nil, nil, errMalformedHash
	}

	params.Memory = uint32(memory)
	params.Time = uint32(time)
	params.Threads = uint8(threads)
	params.KeyLen = uint32(len(digest))
	params.SaltLen = uint32(len(salt))

	return params, salt, digest, nil
}
