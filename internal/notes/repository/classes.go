package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// ClassRepo implements class CRUD over PostgreSQL.
type ClassRepo struct{ pool PgxPool }

// NewClassRepo constructs a class repository.
func NewClassRepo(pool PgxPool) *ClassRepo { return &ClassRepo{pool: pool} }

// List returns all classes, most recently created first.
func (r *ClassRepo) List(ctx context.Context) ([]notes.Class, error) {
	const q = `SELECT id, name, color, created_at FROM classes ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	out := []notes.Class{}
	for rows.Next() {
		var c notes.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a class and fills in its id and creation time.
func (r *ClassRepo) Create(ctx context.Context, c *notes.Class) error {
	const q = `INSERT INTO classes (name, color) VALUES ($1, $2) RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Color).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update applies partial changes. Nil fields keep their current value.
func (r *ClassRepo) Update(ctx context.Context, id int64, name, color *string) (*notes.Class, error) {
	const q = `
UPDATE classes
SET name = COALESCE($2, name), color = COALESCE($3, color)
WHERE id = $1
RETURNING id, name, color, created_at`
	var c notes.Class
	err := r.pool.QueryRow(ctx, q, id, name, color).Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update class %d: %w", id, err)
	}
	return &c, nil
}

// Delete removes a class. Classes that still have documents or resources are
// protected by RESTRICT constraints and report ErrClassNotEmpty.
func (r *ClassRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrClassNotEmpty
		}
		return fmt.Errorf("delete class %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
