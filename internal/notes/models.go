// Package notes defines the persistent records for class-scoped study materials.
package notes

import "time"

// Class groups documents and resources. Deleting a class is blocked while it
// still has materials.
type Class struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is an uploaded file. FileURL points at the stored blob; FileKey is
// the storage key needed to release it and never leaves the server.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ClassID   int64     `json:"classId"`
	FileURL   string    `json:"fileUrl"`
	FileKey   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Resource is an external link, pure metadata with no blob attached.
type Resource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ClassID   int64     `json:"classId"`
	CreatedAt time.Time `json:"createdAt"`
}
