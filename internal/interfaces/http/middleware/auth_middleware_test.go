package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		id, ok := GetUserID(c)
		require.True(t, ok)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.Hex(), "email": email, "role": role})
	})
	r.GET("/admin", AuthMiddleware(svc), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, svc
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expired := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	pair, err := expired.GenerateTokenPair(primitive.NewObjectID().Hex(), "a@b.c", "USER")
	require.NoError(t, err)

	r, _ := newAuthRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_ValidTokenLoadsClaims(t *testing.T) {
	r, svc := newAuthRouter(t)
	userID := primitive.NewObjectID()
	pair, err := svc.GenerateTokenPair(userID.Hex(), "owner@markethub.dev", "VENDOR")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
	assert.Contains(t, w.Body.String(), "owner@markethub.dev")
	assert.Contains(t, w.Body.String(), "VENDOR")
}

func TestRequireAdmin_ForbidsOtherRoles(t *testing.T) {
	r, svc := newAuthRouter(t)
	pair, err := svc.GenerateTokenPair(primitive.NewObjectID().Hex(), "v@markethub.dev", "VENDOR")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	r, svc := newAuthRouter(t)
	pair, err := svc.GenerateTokenPair(primitive.NewObjectID().Hex(), "admin@markethub.dev", "ADMIN")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetActingAdminID_SetOnImpersonatedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	adminID := primitive.NewObjectID()
	token, err := svc.GenerateImpersonationToken(primitive.NewObjectID().Hex(), "owner@markethub.dev", "VENDOR", adminID.Hex())
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		acting, ok := GetActingAdminID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"actingAdmin": acting.Hex()})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminID.Hex())
}
