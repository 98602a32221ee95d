// Package store persists the ten clipboard slots of the lifelike editor.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SlotCount is the number of addressable slots, numbered 0 through 9.
const SlotCount = 10

var (
	// ErrSlotEmpty is returned when reading a slot that holds nothing.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrInvalidSlot is returned for slot numbers outside 0..SlotCount-1.
	ErrInvalidSlot = errors.New("invalid slot")
)

// Slot is a stored selection. Data holds the encoded selection
// ([{"x":w,"y":h},{"x":dx,"y":dy},...]).
type Slot struct {
	Index     int
	Data      []byte
	UpdatedAt time.Time
}

// SlotStore reads and writes numbered slots.
type SlotStore interface {
	Put(ctx context.Context, index int, data []byte) error
	Get(ctx context.Context, index int) (Slot, error)
	Delete(ctx context.Context, index int) error
	// List returns the occupied slots in index order.
	List(ctx context.Context) ([]Slot, error)
	Close() error
}

// ValidateIndex reports ErrInvalidSlot for out-of-range slot numbers.
func ValidateIndex(index int) error {
	if index < 0 || index >= SlotCount {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, index)
	}
	return nil
}
