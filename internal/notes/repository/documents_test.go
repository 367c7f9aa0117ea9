package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

var docCols = []string{"id", "title", "class_id", "file_url", "file_key", "created_at"}

func TestDocumentRepo_List_ScopedToClass(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	now := time.Now()
	mock.ExpectQuery(`FROM documents WHERE class_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(docCols).
			AddRow(int64(7), "Midterm", int64(1), "https://cdn.local/class-notes/k7", "k7", now).
			AddRow(int64(3), "Week 1", int64(1), "https://cdn.local/class-notes/k3", "k3", now.Add(-time.Hour)))

	got, err := r.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Midterm", got[0].Title)
	require.Equal(t, "k3", got[1].FileKey)
}

func TestDocumentRepo_Search_PassesQuery(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	mock.ExpectQuery(`title ILIKE '%' \|\| \$2 \|\| '%'`).
		WithArgs(int64(1), "bio").
		WillReturnRows(pgxmock.NewRows(docCols).
			AddRow(int64(5), "Biology Notes", int64(1), "https://cdn.local/class-notes/k5", "k5", time.Now()))

	got, err := r.Search(context.Background(), 1, "bio")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Biology Notes", got[0].Title)
}

func TestDocumentRepo_Search_EmptyQueryMatchesAll(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	mock.ExpectQuery(`title ILIKE '%' \|\| \$2 \|\| '%'`).
		WithArgs(int64(1), "").
		WillReturnRows(pgxmock.NewRows(docCols).
			AddRow(int64(7), "Midterm", int64(1), "u", "k", time.Now()).
			AddRow(int64(3), "Week 1", int64(1), "u", "k", time.Now()))

	got, err := r.Search(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestDocumentRepo_Get_NotFound(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	mock.ExpectQuery(`FROM documents WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Get(context.Background(), 404)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDocumentRepo_Create(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO documents \(title, class_id, file_url, file_key\)`).
		WithArgs("Midterm", int64(1), "https://cdn.local/class-notes/k7", "k7").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	d := &notes.Document{Title: "Midterm", ClassID: 1, FileURL: "https://cdn.local/class-notes/k7", FileKey: "k7"}
	require.NoError(t, r.Create(context.Background(), d))
	require.Equal(t, int64(7), d.ID)
}

func TestDocumentRepo_Create_UnknownClass(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs("Midterm", int64(99), "u", "k").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	d := &notes.Document{Title: "Midterm", ClassID: 99, FileURL: "u", FileKey: "k"}
	require.ErrorIs(t, r.Create(context.Background(), d), errs.ErrInvalidRequest)
}

func TestDocumentRepo_Delete_SecondCallNotFound(t *testing.T) {
	mock := newMock(t)
	r := NewDocumentRepo(mock)

	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, r.Delete(context.Background(), 7))
	require.ErrorIs(t, r.Delete(context.Background(), 7), errs.ErrNotFound)
}
