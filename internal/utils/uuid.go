package utils

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// IDGenerator produces identifiers for newly created records.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 identifiers (falling back to
// random v4 when v7 generation fails). Used for user ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// KSUIDGenerator generates KSUIDs: 32 bits of timestamp followed by 128 bits
// read from crypto/rand. Used for session ids, which must be unguessable.
type KSUIDGenerator struct {
}

func NewKSUIDGenerator() *KSUIDGenerator {
	return &KSUIDGenerator{}
}

func (g *KSUIDGenerator) Generate() string {
	return ksuid.New().String()
}
