package game

import "errors"

// ErrInvalidState is returned when an action arrives outside the game status
// it requires, e.g. hitting while the round is complete. The table state is
// left untouched.
var ErrInvalidState = errors.New("action not allowed in current game status")

// ErrInvalidAction is returned when an action arrives without its
// eligibility flag, e.g. doubling when can_double is false, or when a bet
// fails validation. The table state is left untouched.
var ErrInvalidAction = errors.New("action not currently available")
