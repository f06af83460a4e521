package model

import "github.com/google/uuid"

// Entity is anything carrying a record identity.  Equality between
// entities is decided by identity alone, never by field values.
type Entity interface {
	EntityID() uuid.UUID
}

// Same reports whether two entities refer to the same record.
func Same[T Entity](a, b T) bool {
	return a.EntityID() == b.EntityID()
}
