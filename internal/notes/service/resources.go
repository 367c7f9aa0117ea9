package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ResourceRepository is the metadata store surface for resources.
type ResourceRepository interface {
	List(ctx context.Context, classID int64) ([]notes.Resource, error)
	Create(ctx context.Context, r *notes.Resource) error
	Delete(ctx context.Context, id int64) error
}

// Resources wraps resource CRUD with link validation.
type Resources struct {
	repo ResourceRepository
}

// NewResources constructs the resource service.
func NewResources(repo ResourceRepository) *Resources { return &Resources{repo: repo} }

func (s *Resources) List(ctx context.Context, classID int64) ([]notes.Resource, error) {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	resources, err := s.repo.List(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: list resources: %v", errs.ErrMetadata, err)
	}
	return resources, nil
}

// Create validates the link as a well-formed http(s) URL. The target is never
// fetched.
func (s *Resources) Create(ctx context.Context, title, rawURL string, classID int64) (*notes.Resource, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required: %w", errs.ErrInvalidRequest)
	}
	if classID <= 0 {
		return nil, fmt.Errorf("classId is required: %w", errs.ErrInvalidRequest)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("url must be a valid http(s) link: %w", errs.ErrInvalidRequest)
	}

	res := &notes.Resource{Title: title, URL: rawURL, ClassID: classID}
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, res); err != nil {
		if errors.Is(err, errs.ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create resource: %v", errs.ErrMetadata, err)
	}
	return res, nil
}

func (s *Resources) Delete(ctx context.Context, id int64) error {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: delete resource: %v", errs.ErrMetadata, err)
	}
}
