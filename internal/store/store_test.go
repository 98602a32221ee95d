package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// exerciseStore runs the SlotStore contract against s.
func exerciseStore(t *testing.T, s SlotStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, 3); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("Get(empty) error = %v, want ErrSlotEmpty", err)
	}
	for _, bad := range []int{-1, SlotCount} {
		if err := s.Put(ctx, bad, []byte("[]")); !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("Put(%d) error = %v, want ErrInvalidSlot", bad, err)
		}
	}

	first := []byte(`[{"x":2,"y":1},{"x":0,"y":0}]`)
	if err := s.Put(ctx, 3, first); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	second := []byte(`[{"x":1,"y":1},{"x":0,"y":0}]`)
	if err := s.Put(ctx, 0, second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, 3)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Data) != string(first) || got.Index != 3 {
		t.Fatalf("Get() = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not recorded")
	}

	// Overwrite keeps a single entry per slot.
	if err := s.Put(ctx, 3, second); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(slots) != 2 || slots[0].Index != 0 || slots[1].Index != 3 {
		t.Fatalf("List() = %+v, want slots 0 and 3", slots)
	}
	if string(slots[1].Data) != string(second) {
		t.Fatalf("slot 3 data = %s, want %s", slots[1].Data, second)
	}

	if err := s.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, 3); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("Get(deleted) error = %v, want ErrSlotEmpty", err)
	}
	if err := s.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete(empty) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("abc")
	_ = s.Put(ctx, 1, data)
	data[0] = 'z'
	got, _ := s.Get(ctx, 1)
	if string(got.Data) != "abc" {
		t.Fatalf("stored data aliased caller slice: %s", got.Data)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots", "slots.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.Put(ctx, 9, []byte(`[{"x":1,"y":1}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(ctx, 9)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if string(got.Data) != `[{"x":1,"y":1}]` {
		t.Fatalf("Get() = %s", got.Data)
	}
}
