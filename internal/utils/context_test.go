// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestUserIDCtxKey(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "user-42")

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != "user-42" {
		t.Errorf("expected userID=user-42, got %s", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	assert.False(t, ok)
	assert.Empty(t, userID)
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	_, ok := GetUserIDFromContext(ctx)

	assert.False(t, ok)
}

func TestGetUserIDFromContext_EmptyString(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "")

	_, ok := GetUserIDFromContext(ctx)

	assert.False(t, ok)
}

func TestWithIdentity_Anonymous_LeavesContextUntouched(t *testing.T) {
	ctx := context.Background()

	got := WithIdentity(ctx, models.Identity{})

	assert.Equal(t, ctx, got)
	assert.True(t, IdentityFromContext(got).IsAnonymous())
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
	}{
		{name: "bearer only", identity: models.Identity{UserID: "u1"}},
		{name: "session", identity: models.Identity{UserID: "u1", SessionID: "s1"}},
		{name: "demo session", identity: models.Identity{UserID: "u2", SessionID: "s2", Demo: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithIdentity(context.Background(), tt.identity)

			assert.Equal(t, tt.identity, IdentityFromContext(ctx))
		})
	}
}
