package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/autumnrose0910/class-notes-project/internal/errs"
	"github.com/autumnrose0910/class-notes-project/internal/notes"
)

// fakeStore counts calls and can fail on demand.
type fakeStore struct {
	puts      int
	removes   int
	objects   map[string][]byte
	putErr    error
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	f.puts++
	if f.putErr != nil {
		return "", f.putErr
	}
	data, _ := io.ReadAll(r)
	f.objects[key] = data
	return "https://cdn.local/class-notes/" + key, nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.removes++
	if f.removeErr != nil {
		return f.removeErr
	}
	// idempotent: deleting a missing key is fine
	delete(f.objects, key)
	return nil
}

// fakeDocRepo is an in-memory DocumentRepository with injectable failures.
type fakeDocRepo struct {
	nextID    int64
	docs      map[int64]notes.Document
	createErr error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{nextID: 1, docs: map[int64]notes.Document{}}
}

func (f *fakeDocRepo) List(_ context.Context, classID int64) ([]notes.Document, error) {
	out := []notes.Document{}
	for _, d := range f.docs {
		if d.ClassID == classID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDocRepo) Search(ctx context.Context, classID int64, _ string) ([]notes.Document, error) {
	return f.List(ctx, classID)
}

func (f *fakeDocRepo) Get(_ context.Context, id int64) (*notes.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDocRepo) Create(_ context.Context, d *notes.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	d.ID = f.nextID
	f.nextID++
	f.docs[d.ID] = *d
	return nil
}

func (f *fakeDocRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.docs[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func newCoordinator(repo *fakeDocRepo, store *fakeStore) *Documents {
	return NewDocuments(repo, store, zap.NewNop())
}

func pdfUpload() UploadInput {
	body := []byte("%PDF-1.7 fake")
	return UploadInput{
		Title:       "Midterm",
		ClassID:     1,
		Filename:    "midterm.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		File:        bytes.NewReader(body),
	}
}

func TestUpload_Success(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	s := newCoordinator(repo, store)

	doc, err := s.Upload(context.Background(), pdfUpload())
	require.NoError(t, err)
	require.Equal(t, int64(1), doc.ID)
	require.Contains(t, doc.FileURL, "https://cdn.local/class-notes/")
	require.NotEmpty(t, doc.FileKey)

	// the returned URL points at bytes that are actually stored
	require.Equal(t, []byte("%PDF-1.7 fake"), store.objects[doc.FileKey])
}

func TestUpload_RejectedBeforeAnyStorageWrite(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*UploadInput)
	}{
		{"missing title", func(in *UploadInput) { in.Title = "  " }},
		{"missing class", func(in *UploadInput) { in.ClassID = 0 }},
		{"missing file", func(in *UploadInput) { in.File = nil; in.Size = 0 }},
		{"unsupported type", func(in *UploadInput) { in.ContentType = "application/zip" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, store := newFakeDocRepo(), newFakeStore()
			s := newCoordinator(repo, store)

			in := pdfUpload()
			tc.mutate(&in)

			_, err := s.Upload(context.Background(), in)
			require.ErrorIs(t, err, errs.ErrInvalidRequest)
			require.Equal(t, 0, store.puts, "validation must reject before any storage write")
		})
	}
}

func TestUpload_StorageFailure_NoMetadataRow(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	store.putErr = fmt.Errorf("connection refused")
	s := newCoordinator(repo, store)

	_, err := s.Upload(context.Background(), pdfUpload())
	require.ErrorIs(t, err, errs.ErrStorage)
	require.Empty(t, repo.docs)
}

func TestUpload_MetadataFailure_CompensatesBlob(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	repo.createErr = fmt.Errorf("connection reset")
	s := newCoordinator(repo, store)

	_, err := s.Upload(context.Background(), pdfUpload())
	require.ErrorIs(t, err, errs.ErrMetadata)
	require.Equal(t, 1, store.puts)
	require.Equal(t, 1, store.removes, "blob must be deleted when the metadata write fails")
	require.Empty(t, store.objects, "no orphan blob may remain")
}

func TestUpload_UnknownClass_SurfacesInvalidRequestAfterCleanup(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	repo.createErr = fmt.Errorf("class 99 does not exist: %w", errs.ErrInvalidRequest)
	s := newCoordinator(repo, store)

	in := pdfUpload()
	in.ClassID = 99
	_, err := s.Upload(context.Background(), in)
	require.ErrorIs(t, err, errs.ErrInvalidRequest)
	require.Empty(t, store.objects)
}

func TestDelete_MetadataFirstThenBlob(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	s := newCoordinator(repo, store)

	doc, err := s.Upload(context.Background(), pdfUpload())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), doc.ID))
	require.Empty(t, repo.docs)
	require.Empty(t, store.objects, "blob must be released after the metadata row")
}

func TestDelete_BlobFailureStillSucceeds(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	s := newCoordinator(repo, store)

	doc, err := s.Upload(context.Background(), pdfUpload())
	require.NoError(t, err)

	store.removeErr = fmt.Errorf("timeout")
	require.NoError(t, s.Delete(context.Background(), doc.ID),
		"losing the metadata row is the authoritative delete signal")
	require.Empty(t, repo.docs)
}

func TestDelete_Twice_SecondNotFound(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	s := newCoordinator(repo, store)

	doc, err := s.Upload(context.Background(), pdfUpload())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), doc.ID))
	err = s.Delete(context.Background(), doc.ID)
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestList_NewestFirstAfterUploads(t *testing.T) {
	repo, store := newFakeDocRepo(), newFakeStore()
	s := newCoordinator(repo, store)

	for _, title := range []string{"Week 1", "Week 2", "Midterm"} {
		in := pdfUpload()
		in.Title = title
		_, err := s.Upload(context.Background(), in)
		require.NoError(t, err)
	}

	docs, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	require.Equal(t, "Midterm", docs[0].Title)
}
