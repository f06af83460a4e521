// Package uow implements a per-entity-type unit of work: a staging area
// batching pending creates, updates and deletes, flushed to a repository
// as one logical commit.  Atomicity holds at the orchestration level
// only; the backing store is not transactional across the three phases.
package uow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Store is the narrow repository surface a unit of work flushes to.
type Store[T any] interface {
	Save(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// staging marks which set an id currently belongs to.  An id is never in
// more than one set at a time.
type staging int

const (
	stagedNone staging = iota
	stagedNew
	stagedDirty
	stagedDeleted
)

// UnitOfWork stages pending changes for one entity type.  Staged sets
// keep insertion order so sequential commits are deterministic.
type UnitOfWork[T any] struct {
	store Store[T]
	id    func(T) uuid.UUID

	fresh   []T
	dirty   []T
	deleted []uuid.UUID
	state   map[uuid.UUID]staging
}

// New builds a unit of work over the given store.  The id function
// extracts the record identity used to reconcile staged operations.
func New[T any](store Store[T], id func(T) uuid.UUID) *UnitOfWork[T] {
	return &UnitOfWork[T]{
		store: store,
		id:    id,
		state: make(map[uuid.UUID]staging),
	}
}

// RegisterNew stages an entity for creation.  A (re)created entity
// supersedes any pending delete or dirty mark for the same id.
func (u *UnitOfWork[T]) RegisterNew(entity T) {
	id := u.id(entity)
	switch u.state[id] {
	case stagedDeleted:
		u.deleted = removeID(u.deleted, id)
	case stagedDirty:
		u.dirty = removeEntity(u.dirty, u.id, id)
	case stagedNew:
		u.fresh = removeEntity(u.fresh, u.id, id)
	}
	u.fresh = append(u.fresh, entity)
	u.state[id] = stagedNew
}

// RegisterDirty stages an entity for update unless it is already staged
// as new or its id is staged for deletion.
func (u *UnitOfWork[T]) RegisterDirty(entity T) {
	id := u.id(entity)
	switch u.state[id] {
	case stagedNew, stagedDeleted:
		return
	case stagedDirty:
		u.dirty = removeEntity(u.dirty, u.id, id)
	}
	u.dirty = append(u.dirty, entity)
	u.state[id] = stagedDirty
}

// RegisterDeleted stages an entity for deletion.  Deleting a pending-new
// entity simply cancels the creation; otherwise any dirty staging is
// dropped and the id is marked deleted.
func (u *UnitOfWork[T]) RegisterDeleted(entity T) {
	id := u.id(entity)
	switch u.state[id] {
	case stagedNew:
		u.fresh = removeEntity(u.fresh, u.id, id)
		delete(u.state, id)
		return
	case stagedDirty:
		u.dirty = removeEntity(u.dirty, u.id, id)
	case stagedDeleted:
		return
	}
	u.deleted = append(u.deleted, id)
	u.state[id] = stagedDeleted
}

// Commit applies staged creates, then updates, then deletes against the
// repository.  On the first failure all staged work is discarded and a
// commit error is returned; there is no partial retry.
func (u *UnitOfWork[T]) Commit(ctx context.Context) error {
	for _, entity := range u.fresh {
		if err := u.store.Save(ctx, entity); err != nil {
			u.Rollback()
			return fmt.Errorf("uow commit: save: %w", err)
		}
	}
	for _, entity := range u.dirty {
		if err := u.store.Update(ctx, entity); err != nil {
			u.Rollback()
			return fmt.Errorf("uow commit: update: %w", err)
		}
	}
	for _, id := range u.deleted {
		if err := u.store.Delete(ctx, id); err != nil {
			u.Rollback()
			return fmt.Errorf("uow commit: delete: %w", err)
		}
	}
	u.Clear()
	return nil
}

// Rollback discards all staged work without touching the repository.
func (u *UnitOfWork[T]) Rollback() { u.Clear() }

// Clear resets the staging sets.
func (u *UnitOfWork[T]) Clear() {
	u.fresh = nil
	u.dirty = nil
	u.deleted = nil
	u.state = make(map[uuid.UUID]staging)
}

// HasChanges reports whether anything is staged.
func (u *UnitOfWork[T]) HasChanges() bool {
	return len(u.fresh) > 0 || len(u.dirty) > 0 || len(u.deleted) > 0
}

// Summary describes the staged sets for logging.
func (u *UnitOfWork[T]) Summary() string {
	return fmt.Sprintf("new: %d, dirty: %d, deleted: %d", len(u.fresh), len(u.dirty), len(u.deleted))
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removeEntity[T any](entities []T, id func(T) uuid.UUID, target uuid.UUID) []T {
	out := entities[:0]
	for _, e := range entities {
		if id(e) != target {
			out = append(out, e)
		}
	}
	return out
}
