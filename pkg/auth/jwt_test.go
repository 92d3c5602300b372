package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		UserID: "user-123",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "threadline",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "threadline"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + signToken(t, testSecret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	_, err = validator.ValidateToken(signToken(t, "other-secret", validClaims()))

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTValidator_WrongIssuer(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "threadline"})
	require.NoError(t, err)

	claims := validClaims()
	claims.Issuer = "imposter"

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTValidator_MissingUserID(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	claims := validClaims()
	claims.UserID = ""

	_, err = validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTValidator_MissingToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	_, err = validator.ValidateToken("")

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})

	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	user := &UserContext{UserID: "user-123", Email: "user@example.com"}

	ctx := SetUserInContext(context.Background(), user)
	got, err := GetUserFromContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = GetUserFromContext(context.Background())
	assert.Error(t, err)
}
