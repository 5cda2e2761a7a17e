package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the user's ObjectID hex
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// ActingAdminKey is set only on impersonated sessions and carries the
	// admin who minted the token
	ActingAdminKey = "actingAdmin"
)

// AuthMiddleware validates the bearer token and loads the claims into the
// request context
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		if claims.ActingAdminID != "" {
			c.Set(ActingAdminKey, claims.ActingAdminID)
		}

		c.Next()
	}
}

// OptionalAuthMiddleware loads claims when a bearer token is present but
// lets anonymous requests through. Used on checkout, which serves both
// logged-in customers and guests.
func OptionalAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   true,
		"success": false,
		"message": message,
		"code":    domainerrors.CodeUnauthorized,
	})
}

// GetUserID gets the authenticated user's ObjectID from context
func GetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	hex, exists := c.Get(UserIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// GetActingAdminID returns the impersonating admin's ObjectID when the
// session was minted through impersonation
func GetActingAdminID(c *gin.Context) (primitive.ObjectID, bool) {
	hex, exists := c.Get(ActingAdminKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abortUnauthorized(c, "User role not found")
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   true,
			"success": false,
			"message": "Insufficient permissions",
			"code":    domainerrors.CodeForbidden,
		})
	}
}

// RequireAdmin creates a middleware that requires the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("ADMIN")
}

// RequireVendor creates a middleware that requires the VENDOR role. Admins
// pass too so support staff can act on behalf of stores.
func RequireVendor() gin.HandlerFunc {
	return RequireRole("VENDOR", "ADMIN")
}
