package repository

import (
	"context"
	"fmt"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ResourceRepo implements resource CRUD over PostgreSQL.
type ResourceRepo struct{ pool PgxPool }

// NewResourceRepo constructs a resource repository.
func NewResourceRepo(pool PgxPool) *ResourceRepo { return &ResourceRepo{pool: pool} }

// List returns a class's resources, most recently created first.
func (r *ResourceRepo) List(ctx context.Context, classID int64) ([]notes.Resource, error) {
	const q = `
SELECT id, title, url, class_id, created_at
FROM resources WHERE class_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, classID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	out := []notes.Resource{}
	for rows.Next() {
		var res notes.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.URL, &res.ClassID, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Create inserts a resource and fills in its id and creation time.
func (r *ResourceRepo) Create(ctx context.Context, res *notes.Resource) error {
	const q = `
INSERT INTO resources (title, url, class_id)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, res.Title, res.URL, res.ClassID).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("class %d does not exist: %w", res.ClassID, errs.ErrInvalidRequest)
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// Delete removes a resource by id.
func (r *ResourceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
