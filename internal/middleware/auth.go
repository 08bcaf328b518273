package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nepal-egov/polling-backend/internal/models"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "polling-dev-secret"
	}
	return []byte(secret)
}

// IssueToken signs a bearer token for a user, valid for 72 hours.
func IssueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// resolveToken parses the Authorization header and returns the caller's
// identity, or ok=false for a missing/invalid/expired token.
func resolveToken(c *gin.Context) (userID uint, role models.Role, ok bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "", false
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, "", false
	}

	roleClaim, _ := claims["role"].(string)
	r := models.Role(roleClaim)
	if !r.Valid() {
		r = models.RoleUser
	}

	return uint(id), r, true
}

// AuthMiddleware rejects requests without a valid bearer token and exposes
// the caller's id and role to handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := resolveToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// but never rejects the request. Used on public reads that show more to
// admins (draft polls).
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := resolveToken(c); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
		}
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware; it rejects non-admin callers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role.(models.Role) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
