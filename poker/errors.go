package poker

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerExists  = errors.New("player already registered")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrOutOfTurn     = errors.New("action out of turn")
	ErrRoomFull      = errors.New("room is full")
)

// PoolSizeError reports a card pool whose cardinality does not match
// the variant's required size. It is the only error Evaluate returns.
type PoolSizeError struct {
	Variant Variant
	Want    int
	Got     int
}

func (e *PoolSizeError) Error() string {
	return fmt.Sprintf("%s requires %d cards, got %d", e.Variant, e.Want, e.Got)
}
