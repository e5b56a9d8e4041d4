package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elomAglan/Gestion-de-vente/pkg/config"
	"github.com/elomAglan/Gestion-de-vente/pkg/jwtutil"
)

func callProtected(t *testing.T, jwt *jwtutil.JWTUtil, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := AuthMiddleware(jwt)(func(c echo.Context) error {
		role, _ := RoleFromContext(c)
		return c.String(http.StatusOK, role)
	})
	require.NoError(t, h(c))
	return rec
}

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := callProtected(t, testJWT(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	rec := callProtected(t, testJWT(), "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := callProtected(t, testJWT(), "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwt := testJWT()
	token, err := jwt.GenerateToken(7, "mod@example.com", "Moderator")
	require.NoError(t, err)

	rec := callProtected(t, jwt, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Moderator", rec.Body.String())
}
