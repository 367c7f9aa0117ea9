// Package service contains the coordinators that keep the object store and
// the metadata store consistent across partial failure.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
	"github.com/autumnrose0910/class-notes-project/internal/storage"
	"github.com/autumnrose0910/class-notes-project/pkg/metrics"
)

// ObjectStore is the blob store surface the coordinators depend on.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// DocumentRepository is the metadata store surface for documents.
type DocumentRepository interface {
	List(ctx context.Context, classID int64) ([]notes.Document, error)
	Search(ctx context.Context, classID int64, query string) ([]notes.Document, error)
	Get(ctx context.Context, id int64) (*notes.Document, error)
	Create(ctx context.Context, d *notes.Document) error
	Delete(ctx context.Context, id int64) error
}

// allowedContentTypes is the closed set of upload types the viewer can render.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"video/mp4":       true,
}

// cleanupTimeout bounds compensating deletes, which must not inherit the
// request context: cleanup has to run even after the caller disconnects.
const cleanupTimeout = 15 * time.Second

// metadataTimeout bounds each metadata store call so no request hangs on an
// unavailable database.
const metadataTimeout = 10 * time.Second

func mdCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, metadataTimeout)
}

// Documents coordinates document ingestion and deletion across both stores.
type Documents struct {
	repo  DocumentRepository
	store ObjectStore
	log   *zap.Logger
}

// NewDocuments constructs the document coordinator.
func NewDocuments(repo DocumentRepository, store ObjectStore, log *zap.Logger) *Documents {
	return &Documents{repo: repo, store: store, log: log}
}

// UploadInput carries one ingestion request.
type UploadInput struct {
	Title       string
	ClassID     int64
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// Upload validates the request, writes the blob, then records metadata.
// If the metadata write fails after the blob write, the blob is deleted again
// before the error surfaces, so no orphan blob is left behind and the caller
// never observes partial state.
func (s *Documents) Upload(ctx context.Context, in UploadInput) (*notes.Document, error) {
	if err := validateUpload(in); err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	key := storage.ObjectKey(in.Filename)
	fileURL, err := s.store.Put(ctx, key, in.File, in.Size, in.ContentType)
	if err != nil {
		metrics.Uploads.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("%w: put blob: %v", errs.ErrStorage, err)
	}

	doc := &notes.Document{
		Title:   in.Title,
		ClassID: in.ClassID,
		FileURL: fileURL,
		FileKey: key,
	}
	createCtx, cancel := mdCtx(ctx)
	defer cancel()
	if err := s.repo.Create(createCtx, doc); err != nil {
		s.compensate(key)
		metrics.Uploads.WithLabelValues("metadata_error").Inc()
		if errors.Is(err, errs.ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: record document: %v", errs.ErrMetadata, err)
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	return doc, nil
}

// compensate removes a blob whose metadata write failed. Runs on a fresh
// bounded context; removing an already-absent key is not an error.
func (s *Documents) compensate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := s.store.Remove(ctx, key); err != nil {
		metrics.OrphanedBlobs.Inc()
		s.log.Error("orphan blob: compensating delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a document: metadata row first, blob second. Losing the
// metadata row is the authoritative "document is gone" signal, so a failed
// blob delete is logged as an orphan and the call still succeeds.
func (s *Documents) Delete(ctx context.Context, id int64) error {
	lookupCtx, cancel := mdCtx(ctx)
	defer cancel()
	doc, err := s.repo.Get(lookupCtx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: lookup document: %v", errs.ErrMetadata, err)
	}

	deleteCtx, cancelDelete := mdCtx(ctx)
	defer cancelDelete()
	if err := s.repo.Delete(deleteCtx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// lost a race with a concurrent delete
			return err
		}
		metrics.Deletions.WithLabelValues("metadata_error").Inc()
		return fmt.Errorf("%w: delete metadata: %v", errs.ErrMetadata, err)
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := s.store.Remove(cleanupCtx, doc.FileKey); err != nil {
		metrics.OrphanedBlobs.Inc()
		s.log.Error("orphan blob: cleanup after delete failed",
			zap.Int64("documentID", id), zap.String("key", doc.FileKey), zap.Error(err))
	}

	metrics.Deletions.WithLabelValues("ok").Inc()
	return nil
}

// List returns a class's documents, newest first.
func (s *Documents) List(ctx context.Context, classID int64) ([]notes.Document, error) {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	docs, err := s.repo.List(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", errs.ErrMetadata, err)
	}
	return docs, nil
}

// Search returns a class's documents matching the query, newest first.
func (s *Documents) Search(ctx context.Context, classID int64, query string) ([]notes.Document, error) {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	docs, err := s.repo.Search(ctx, classID, query)
	if err != nil {
		return nil, fmt.Errorf("%w: search documents: %v", errs.ErrMetadata, err)
	}
	return docs, nil
}

func validateUpload(in UploadInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required: %w", errs.ErrInvalidRequest)
	}
	if in.ClassID <= 0 {
		return fmt.Errorf("classId is required: %w", errs.ErrInvalidRequest)
	}
	if in.File == nil || in.Size <= 0 {
		return fmt.Errorf("file is required: %w", errs.ErrInvalidRequest)
	}
	if !allowedContentTypes[in.ContentType] {
		return fmt.Errorf("unsupported file type %q: %w", in.ContentType, errs.ErrInvalidRequest)
	}
	return nil
}
