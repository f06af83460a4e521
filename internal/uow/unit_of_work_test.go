package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type record struct {
	ID   uuid.UUID
	Name string
}

// recordingStore logs the order of operations applied at commit and can
// be told to fail a given operation.
type recordingStore struct {
	ops        []string
	failSave   bool
	failUpdate bool
}

var errStore = errors.New("store failure")

func (s *recordingStore) Save(_ context.Context, r record) error {
	if s.failSave {
		return errStore
	}
	s.ops = append(s.ops, "save:"+r.Name)
	return nil
}

func (s *recordingStore) Update(_ context.Context, r record) error {
	if s.failUpdate {
		return errStore
	}
	s.ops = append(s.ops, "update:"+r.Name)
	return nil
}

func (s *recordingStore) Delete(_ context.Context, id uuid.UUID) error {
	s.ops = append(s.ops, "delete")
	return nil
}

func newTestUOW(store *recordingStore) *UnitOfWork[record] {
	return New[record](store, func(r record) uuid.UUID { return r.ID })
}

func TestCommitOrder(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	created := record{ID: uuid.New(), Name: "created"}
	changed := record{ID: uuid.New(), Name: "changed"}
	removed := record{ID: uuid.New(), Name: "removed"}

	// Stage out of order; commit must run creates, updates, deletes.
	u.RegisterDeleted(removed)
	u.RegisterDirty(changed)
	u.RegisterNew(created)

	if !u.HasChanges() {
		t.Fatal("expected staged changes")
	}
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	want := []string{"save:created", "update:changed", "delete"}
	if len(store.ops) != len(want) {
		t.Fatalf("ops: got %v, want %v", store.ops, want)
	}
	for i := range want {
		if store.ops[i] != want[i] {
			t.Errorf("op %d: got %s, want %s", i, store.ops[i], want[i])
		}
	}
	if u.HasChanges() {
		t.Error("commit must clear the staged sets")
	}
}

func TestRegisterDirtyIgnoredForPendingNew(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	r := record{ID: uuid.New(), Name: "fresh"}
	u.RegisterNew(r)
	u.RegisterDirty(r)

	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(store.ops) != 1 || store.ops[0] != "save:fresh" {
		t.Errorf("ops: got %v, want a single save", store.ops)
	}
}

func TestDeleteCancelsPendingNew(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	r := record{ID: uuid.New(), Name: "shortlived"}
	u.RegisterNew(r)
	u.RegisterDeleted(r)

	if u.HasChanges() {
		t.Error("deleting a pending-new entity should leave nothing staged")
	}
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("ops: got %v, want none", store.ops)
	}
}

func TestRegisterNewSupersedesDelete(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	r := record{ID: uuid.New(), Name: "revived"}
	u.RegisterDeleted(r)
	u.RegisterNew(r)

	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(store.ops) != 1 || store.ops[0] != "save:revived" {
		t.Errorf("ops: got %v, want a single save", store.ops)
	}
}

func TestLastDirtyWins(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	id := uuid.New()
	u.RegisterDirty(record{ID: id, Name: "first"})
	u.RegisterDirty(record{ID: id, Name: "second"})

	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(store.ops) != 1 || store.ops[0] != "update:second" {
		t.Errorf("ops: got %v, want only the latest update", store.ops)
	}
}

func TestCommitFailureDiscardsStagedWork(t *testing.T) {
	store := &recordingStore{failSave: true}
	u := newTestUOW(store)

	u.RegisterNew(record{ID: uuid.New(), Name: "doomed"})
	if err := u.Commit(context.Background()); !errors.Is(err, errStore) {
		t.Fatalf("commit: got %v, want wrapped store failure", err)
	}
	if u.HasChanges() {
		t.Error("failed commit must roll back the staged sets")
	}

	// A retry after the failure has nothing left to apply.
	store.failSave = false
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("empty commit: %v", err)
	}
	if len(store.ops) != 0 {
		t.Errorf("ops after rollback: got %v, want none", store.ops)
	}
}

func TestRollback(t *testing.T) {
	store := &recordingStore{}
	u := newTestUOW(store)

	u.RegisterNew(record{ID: uuid.New(), Name: "undone"})
	u.Rollback()

	if u.HasChanges() {
		t.Error("rollback must clear the staged sets")
	}
}

func TestSummary(t *testing.T) {
	u := newTestUOW(&recordingStore{})
	u.RegisterNew(record{ID: uuid.New()})
	u.RegisterDirty(record{ID: uuid.New()})

	if got, want := u.Summary(), "new: 1, dirty: 1, deleted: 0"; got != want {
		t.Errorf("summary: got %q, want %q", got, want)
	}
}
