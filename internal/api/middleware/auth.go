package middleware

import (
	"net/http"
	"strings"

	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for bearer-token authentication of API
// requests. The token is an opaque key resolved by lookup; both the
// "Bearer <key>" and "Token <key>" schemes are accepted.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Set("isStaff", user.IsStaff)

		c.Next()
	}
}

// RequireStaff gates catalog mutation and the admin surface.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaff, exists := c.Get("isStaff")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		staff, ok := isStaff.(bool)
		if !ok || !staff {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
