package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(raw string) error
}

// RequireAdmin returns a Gin middleware that verifies the Bearer capability
// token on mutating routes.
func RequireAdmin(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		if err := ver.Verify(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}
