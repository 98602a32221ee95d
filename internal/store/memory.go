package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements SlotStore in process memory. Contents are lost when
// the program exits.
type MemoryStore struct {
	mu    sync.RWMutex
	slots [SlotCount]*Slot
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Put stores a copy of data in the slot.
func (s *MemoryStore) Put(ctx context.Context, index int, data []byte) error {
	if err := ValidateIndex(index); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[index] = &Slot{
		Index:     index,
		Data:      append([]byte(nil), data...),
		UpdatedAt: s.now().UTC(),
	}
	return nil
}

// Get returns the slot contents or ErrSlotEmpty.
func (s *MemoryStore) Get(ctx context.Context, index int) (Slot, error) {
	if err := ValidateIndex(index); err != nil {
		return Slot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot := s.slots[index]
	if slot == nil {
		return Slot{}, fmt.Errorf("slot %d: %w", index, ErrSlotEmpty)
	}
	out := *slot
	out.Data = append([]byte(nil), slot.Data...)
	return out, nil
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (s *MemoryStore) Delete(ctx context.Context, index int) error {
	if err := ValidateIndex(index); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[index] = nil
	return nil
}

// List returns the occupied slots in index order.
func (s *MemoryStore) List(ctx context.Context) ([]Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Slot
	for _, slot := range s.slots {
		if slot != nil {
			c := *slot
			c.Data = append([]byte(nil), slot.Data...)
			out = append(out, c)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
