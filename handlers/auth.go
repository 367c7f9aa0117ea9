package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenIssuer exchanges the admin password for a capability token.
type TokenIssuer interface {
	Issue(password string) (string, error)
}

// RegisterAuthRoutes wires the login endpoint.
func RegisterAuthRoutes(r *gin.Engine, issuer TokenIssuer) {
	r.POST("/auth/login", func(c *gin.Context) {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		token, err := issuer.Issue(req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
}
