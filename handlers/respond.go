// Package handlers exposes the HTTP surface: listing, search, login and the
// admin-gated mutations. Handlers dispatch to the services and translate
// their errors into boundary-level statuses; they carry no policy of their own.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
)

// writeError maps service errors onto HTTP statuses. Input problems keep
// their message; infrastructure faults are reported generically so storage
// keys and connection details stay out of responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, errs.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrClassNotEmpty):
		c.JSON(http.StatusConflict, gin.H{"error": "class still has documents or resources"})
	case errors.Is(err, errs.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func classIDQuery(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("classId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "classId query parameter is required"})
		return 0, false
	}
	return id, true
}
