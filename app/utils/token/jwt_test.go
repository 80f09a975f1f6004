package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUtil() *JWTUtil {
	return NewJWTUtil(Config{
		SigningKey:    "unit-test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestJWTUtil_AccessTokenRoundTrip(t *testing.T) {
	util := newTestUtil()

	tokenString, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	claims, err := util.ValidateToken(tokenString, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTUtil_EnforcesTokenType(t *testing.T) {
	util := newTestUtil()

	accessToken, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)
	refreshToken, err := util.GenerateRefreshToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	_, err = util.ValidateToken(accessToken, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = util.ValidateToken(refreshToken, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTUtil_RejectsWrongKey(t *testing.T) {
	util := newTestUtil()
	other := NewJWTUtil(Config{SigningKey: "different-secret", AccessExpiry: time.Minute})

	tokenString, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString, TypeAccess)
	assert.Error(t, err)
}

func TestJWTUtil_RejectsExpiredToken(t *testing.T) {
	util := NewJWTUtil(Config{SigningKey: "unit-test-secret", AccessExpiry: -time.Minute})

	tokenString, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	_, err = util.ValidateToken(tokenString, TypeAccess)
	assert.Error(t, err)
}

func TestJWTUtil_UniqueJTIs(t *testing.T) {
	util := newTestUtil()

	first, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)
	second, err := util.GenerateAccessToken("user-1", "u@example.com", "customer")
	require.NoError(t, err)

	firstClaims, err := util.ValidateToken(first, TypeAccess)
	require.NoError(t, err)
	secondClaims, err := util.ValidateToken(second, TypeAccess)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
