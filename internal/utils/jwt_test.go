package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "user-123", tokenTestNow, time.Hour, "secret-key")

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)
	assert.Equal(t, "user-123", token.UserID)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok, "could not cast claims to RegisteredClaims")
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)
	assert.True(t, claims.ExpiresAt.Time.Equal(tokenTestNow.Add(time.Hour)))
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "u", time.Hour, "key"},
		{"empty user", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "u", 0, "key"},
		{"empty key", "iss", "u", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tokenTestNow, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("iss", "user-7", tokenTestNow, time.Hour, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "iss", tokenTestNow.Add(time.Minute))

	require.NoError(t, err)
	assert.Equal(t, "user-7", parsed.UserID)
	assert.Equal(t, token.SignedString, parsed.SignedString)
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	token, err := GenerateJWTToken("iss", "user-7", tokenTestNow, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "other-key", "iss", tokenTestNow)

	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken("iss", "user-7", tokenTestNow, time.Minute, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "key", "iss", tokenTestNow.Add(2*time.Minute))

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken("iss", "user-7", tokenTestNow, time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "key", "someone-else", tokenTestNow)

	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not-a-jwt", "key", "iss", tokenTestNow)

	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "user-7",
		ExpiresAt: jwt.NewNumericDate(tokenTestNow.Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "key", "iss", tokenTestNow)

	assert.Error(t, err)
}
