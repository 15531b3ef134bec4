package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/util"
)

const testSecret = "test-secret"

func testToken(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	tokens, err := util.GenerateTokenPair(7, "user@example.com", role, testSecret, expiry, expiry)
	require.NoError(t, err)
	return tokens.AccessToken
}

func testRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.Authenticate())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "customer", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.Authenticate())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.Authenticate())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "customer", -time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthenticate_TokenFromQueryParam(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.Authenticate())

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+testToken(t, "customer", time.Hour), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.Authenticate(), m.RequireRole(string(model.RoleAdmin)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "customer", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "admin", time.Hour))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticate_InvalidTokenContinuesAsGuest(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	r := testRouter(m.OptionalAuthenticate())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}
