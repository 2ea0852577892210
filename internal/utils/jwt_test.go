package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() JWTManager {
	return JWTManager{
		Secret:          []byte("0123456789abcdef0123456789abcdef"),
		Issuer:          "coffeeshop-test",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestIssuePairAndParseAccess(t *testing.T) {
	manager := testManager()
	userID := uuid.New()

	pair, err := manager.IssuePair(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(1800), pair.ExpiresIn)

	claims, err := manager.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	manager := testManager()

	pair, err := manager.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	_, err = manager.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenWrongType)
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	manager := testManager()

	pair, err := manager.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	_, err = manager.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenWrongType)
}

func TestParseAccessMalformedToken(t *testing.T) {
	manager := testManager()

	_, err := manager.ParseAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessWrongSecret(t *testing.T) {
	manager := testManager()
	other := testManager()
	other.Secret = []byte("ffffffffffffffffffffffffffffffff")

	pair, err := manager.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessExpired(t *testing.T) {
	manager := testManager()
	manager.AccessTokenTTL = time.Millisecond

	pair, err := manager.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = manager.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRefreshExpired(t *testing.T) {
	manager := testManager()
	manager.RefreshTokenTTL = time.Millisecond

	pair, err := manager.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = manager.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRefreshReturnsSubject(t *testing.T) {
	manager := testManager()
	userID := uuid.New()

	pair, err := manager.IssuePair(userID, "user")
	require.NoError(t, err)

	parsed, err := manager.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}
