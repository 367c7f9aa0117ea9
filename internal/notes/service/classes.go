package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ClassRepository is the metadata store surface for classes.
type ClassRepository interface {
	List(ctx context.Context) ([]notes.Class, error)
	Create(ctx context.Context, c *notes.Class) error
	Update(ctx context.Context, id int64, name, color *string) (*notes.Class, error)
	Delete(ctx context.Context, id int64) error
}

// Classes wraps class CRUD with input validation.
type Classes struct {
	repo ClassRepository
}

// NewClasses constructs the class service.
func NewClasses(repo ClassRepository) *Classes { return &Classes{repo: repo} }

func (s *Classes) List(ctx context.Context) ([]notes.Class, error) {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list classes: %v", errs.ErrMetadata, err)
	}
	return classes, nil
}

func (s *Classes) Create(ctx context.Context, name, color string) (*notes.Class, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(color) == "" {
		return nil, fmt.Errorf("name and color are required: %w", errs.ErrInvalidRequest)
	}
	c := &notes.Class{Name: name, Color: color}
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: create class: %v", errs.ErrMetadata, err)
	}
	return c, nil
}

// Update applies a partial edit; nil fields are left unchanged.
func (s *Classes) Update(ctx context.Context, id int64, name, color *string) (*notes.Class, error) {
	if name == nil && color == nil {
		return nil, fmt.Errorf("nothing to update: %w", errs.ErrInvalidRequest)
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("name must not be empty: %w", errs.ErrInvalidRequest)
	}
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	c, err := s.repo.Update(ctx, id, name, color)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: update class: %v", errs.ErrMetadata, err)
	}
	return c, nil
}

// Delete removes an empty class. A class that still has documents or
// resources reports ErrClassNotEmpty.
func (s *Classes) Delete(ctx context.Context, id int64) error {
	ctx, cancel := mdCtx(ctx)
	defer cancel()
	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrClassNotEmpty):
		return err
	default:
		return fmt.Errorf("%w: delete class: %v", errs.ErrMetadata, err)
	}
}
