package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// DocumentRepo implements document metadata CRUD over PostgreSQL.
type DocumentRepo struct{ pool PgxPool }

// NewDocumentRepo constructs a document repository.
func NewDocumentRepo(pool PgxPool) *DocumentRepo { return &DocumentRepo{pool: pool} }

const documentCols = `id, title, class_id, file_url, file_key, created_at`

func scanDocuments(rows pgx.Rows) ([]notes.Document, error) {
	defer rows.Close()
	out := []notes.Document{}
	for rows.Next() {
		var d notes.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.ClassID, &d.FileURL, &d.FileKey, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// List returns a class's documents, most recently created first.
func (r *DocumentRepo) List(ctx context.Context, classID int64) ([]notes.Document, error) {
	const q = `SELECT ` + documentCols + `
FROM documents WHERE class_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, classID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return scanDocuments(rows)
}

// Search returns a class's documents whose title contains the query,
// case-insensitively. An empty query matches everything.
func (r *DocumentRepo) Search(ctx context.Context, classID int64, query string) ([]notes.Document, error) {
	const q = `SELECT ` + documentCols + `
FROM documents
WHERE class_id = $1 AND title ILIKE '%' || $2 || '%'
ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, classID, query)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return scanDocuments(rows)
}

// Get returns a single document by id.
func (r *DocumentRepo) Get(ctx context.Context, id int64) (*notes.Document, error) {
	const q = `SELECT ` + documentCols + ` FROM documents WHERE id = $1`
	var d notes.Document
	err := r.pool.QueryRow(ctx, q, id).Scan(&d.ID, &d.Title, &d.ClassID, &d.FileURL, &d.FileKey, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return &d, nil
}

// Create inserts document metadata and fills in its id and creation time.
// A classId that references no class reports ErrInvalidRequest.
func (r *DocumentRepo) Create(ctx context.Context, d *notes.Document) error {
	const q = `
INSERT INTO documents (title, class_id, file_url, file_key)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, d.Title, d.ClassID, d.FileURL, d.FileKey).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("class %d does not exist: %w", d.ClassID, errs.ErrInvalidRequest)
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Delete removes document metadata by id.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
