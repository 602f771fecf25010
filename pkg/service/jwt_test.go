package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "os-manager/pkg/errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken("u-1", "manager")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, time.Hour, svc.GetAccessTokenTTL())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, zap.NewNop()).(*jwtService)

	other := NewJWTService("other", time.Hour, zap.NewNop())
	foreign, err := other.GenerateToken("u-1", "user")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.GenerateToken("u-1", "user")
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: "u-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}
