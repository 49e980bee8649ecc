package service

import (
	"context"
	"testing"
	"time"

	"exam-byte/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.CreateJWT("user-1", time.Minute, dto.AccessTokenType)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, dto.AccessTokenType, claims.TokenType)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired, err := svc.CreateJWT("user-1", -time.Minute, dto.AccessTokenType)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	otherKey, err := NewTokenService("other-secret").CreateJWT("user-1", time.Minute, dto.AccessTokenType)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), otherKey)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, dto.AuthClaims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, err = svc.ValidateJWT(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
