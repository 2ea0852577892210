package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coffeeshop/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() *utils.JWTManager {
	return &utils.JWTManager{
		Secret:          []byte("0123456789abcdef0123456789abcdef"),
		Issuer:          "coffeeshop-test",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func doRequest(t *testing.T, m AuthMiddleware, authorization string, extra ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	wrapped := m.RequireAuth(handler)

	err := wrapped(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestRequireAuthAcceptsValidAccessToken(t *testing.T) {
	jwt := testJWT()
	userID := uuid.New()
	pair, err := jwt.IssuePair(userID, "admin")
	require.NoError(t, err)

	rec, c := doRequest(t, AuthMiddleware{JWT: jwt}, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := UserIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	role, ok := RoleFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, AuthMiddleware{JWT: testJWT()}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := doRequest(t, AuthMiddleware{JWT: testJWT()}, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	jwt := testJWT()
	pair, err := jwt.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	rec, _ := doRequest(t, AuthMiddleware{JWT: jwt}, "Bearer "+pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	jwt := testJWT()
	jwt.AccessTokenTTL = time.Millisecond
	pair, err := jwt.IssuePair(uuid.New(), "user")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	rec, _ := doRequest(t, AuthMiddleware{JWT: jwt}, "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	jwt := testJWT()
	adminPair, err := jwt.IssuePair(uuid.New(), "admin")
	require.NoError(t, err)
	userPair, err := jwt.IssuePair(uuid.New(), "user")
	require.NoError(t, err)

	adminGate := RequireRole("admin")

	rec, _ := doRequest(t, AuthMiddleware{JWT: jwt}, "Bearer "+adminPair.AccessToken, adminGate)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, AuthMiddleware{JWT: jwt}, "Bearer "+userPair.AccessToken, adminGate)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
