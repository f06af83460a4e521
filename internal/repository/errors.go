// Package repository defines the persistence contracts consumed by the
// domain services and their MySQL implementations.  Sentinel errors
// allow higher layers such as handlers to distinguish between failure
// scenarios without inspecting driver details.
package repository

import "errors"

// ErrNotFound is returned by lookups when no record matches. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state,
// such as inserting a duplicate unique key or updating a row that no
// longer exists. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
