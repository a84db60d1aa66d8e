package arena

import "github.com/pkg/errors"

var (
	// ErrReserve indicates the arena could not reserve its backing block.
	ErrReserve = errors.New("arena: cannot reserve storage")

	// ErrCapacityExhausted indicates an allocation would exceed the fixed slot budget.
	ErrCapacityExhausted = errors.New("arena: capacity exhausted")

	// ErrInvalidSize indicates a negative slot count was requested.
	ErrInvalidSize = errors.New("arena: invalid allocation size")

	// ErrReleased indicates use of an arena after Release.
	ErrReleased = errors.New("arena: use after Release")
)
