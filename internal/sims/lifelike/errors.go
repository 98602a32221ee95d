package lifelike

import "errors"

var (
	// ErrInvalidRule reports a rule string that is not of the form B<digits>/S<digits>.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrOutOfBounds reports a direct, non-wrapping access outside the grid.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrEmptySelection reports a paste without a captured selection.
	ErrEmptySelection = errors.New("empty selection")
)
