package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autumnrose0910/class-notes-project/internal/notes"
	"github.com/autumnrose0910/class-notes-project/internal/notes/service"
)

// DocumentService is the document operations surface the handlers depend on.
type DocumentService interface {
	List(ctx context.Context, classID int64) ([]notes.Document, error)
	Search(ctx context.Context, classID int64, query string) ([]notes.Document, error)
	Upload(ctx context.Context, in service.UploadInput) (*notes.Document, error)
	Delete(ctx context.Context, id int64) error
}

// RegisterDocumentRoutes wires document listing, search, upload and delete.
// maxUploadBytes caps the multipart body of the upload endpoint.
func RegisterDocumentRoutes(r *gin.Engine, svc DocumentService, admin gin.HandlerFunc, maxUploadBytes int64) {
	r.GET("/documents", func(c *gin.Context) {
		classID, ok := classIDQuery(c)
		if !ok {
			return
		}
		docs, err := svc.List(c.Request.Context(), classID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	r.GET("/documents/search", func(c *gin.Context) {
		classID, ok := classIDQuery(c)
		if !ok {
			return
		}
		docs, err := svc.Search(c.Request.Context(), classID, c.Query("q"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	r.POST("/documents/upload", admin, func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
			return
		}
		defer file.Close()

		classID, _ := strconv.ParseInt(c.PostForm("classId"), 10, 64)
		doc, err := svc.Upload(c.Request.Context(), service.UploadInput{
			Title:       c.PostForm("title"),
			ClassID:     classID,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			File:        file,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, doc)
	})

	r.DELETE("/documents/:id", admin, func(c *gin.Context) {
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
