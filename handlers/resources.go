package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ResourceService is the resource operations surface the handlers depend on.
type ResourceService interface {
	List(ctx context.Context, classID int64) ([]notes.Resource, error)
	Create(ctx context.Context, title, url string, classID int64) (*notes.Resource, error)
	Delete(ctx context.Context, id int64) error
}

// RegisterResourceRoutes wires resource listing and the admin-gated mutations.
func RegisterResourceRoutes(r *gin.Engine, svc ResourceService, admin gin.HandlerFunc) {
	r.GET("/resources", func(c *gin.Context) {
		classID, ok := classIDQuery(c)
		if !ok {
			return
		}
		resources, err := svc.List(c.Request.Context(), classID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resources)
	})

	r.POST("/resources", admin, func(c *gin.Context) {
		var req struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			ClassID int64  `json:"classId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		res, err := svc.Create(c.Request.Context(), req.Title, req.URL, req.ClassID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	})

	r.DELETE("/resources/:id", admin, func(c *gin.Context) {
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
