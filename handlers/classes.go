package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ClassService is the class operations surface the handlers depend on.
type ClassService interface {
	List(ctx context.Context) ([]notes.Class, error)
	Create(ctx context.Context, name, color string) (*notes.Class, error)
	Update(ctx context.Context, id int64, name, color *string) (*notes.Class, error)
	Delete(ctx context.Context, id int64) error
}

// RegisterClassRoutes wires class listing and the admin-gated class mutations.
func RegisterClassRoutes(r *gin.Engine, svc ClassService, admin gin.HandlerFunc) {
	r.GET("/classes", func(c *gin.Context) {
		classes, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, classes)
	})

	r.POST("/classes", admin, func(c *gin.Context) {
		var req struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		class, err := svc.Create(c.Request.Context(), req.Name, req.Color)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, class)
	})

	r.PUT("/classes/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			Name  *string `json:"name"`
			Color *string `json:"color"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		class, err := svc.Update(c.Request.Context(), id, req.Name, req.Color)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, class)
	})

	r.DELETE("/classes/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}
