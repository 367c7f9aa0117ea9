// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by the repositories, coordinators and handlers.
var (
	// ErrUnauthorized indicates a missing, invalid or expired admin capability.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRequest indicates caller input rejected before any external call.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClassNotEmpty indicates a class still referenced by documents or resources.
	ErrClassNotEmpty = errors.New("class not empty")

	// ErrStorage indicates an object store fault (write, delete or timeout).
	ErrStorage = errors.New("storage failure")

	// ErrMetadata indicates a metadata store fault (unavailable or constraint violation).
	ErrMetadata = errors.New("metadata failure")
)
