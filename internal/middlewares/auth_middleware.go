package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenRevocationChecker reports whether a token id has been revoked by a
// logout. A nil checker disables the check.
type TokenRevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func AuthMiddleware(secret string, revoked TokenRevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing access token"})
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user ID"})
			c.Abort()
			return
		}

		if revoked != nil {
			jti, _ := claims["jti"].(string)
			if jti != "" {
				isRevoked, err := revoked.IsRevoked(c.Request.Context(), jti)
				if err == nil && isRevoked {
					c.JSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
					c.Abort()
					return
				}
			}
		}

		role, _ := claims["role"].(string)
		schoolID, _ := claims["school_id"].(string)

		c.Set("userID", userID)
		c.Set("role", role)
		c.Set("schoolID", schoolID)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated role is
// one of the permitted ones.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		got, _ := role.(string)
		for _, r := range roles {
			if got == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Insufficient role"})
		c.Abort()
	}
}

func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func Role(c *gin.Context) string {
	v, _ := c.Get("role")
	r, _ := v.(string)
	return r
}

// SchoolID returns the tenant the caller is scoped to. Every query on
// tenant-owned rows must filter by it.
func SchoolID(c *gin.Context) (string, bool) {
	v, ok := c.Get("schoolID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
