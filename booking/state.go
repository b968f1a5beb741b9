package booking

import (
	"fmt"
	"time"
)

// State selects which bookings a listing returns. ALL, WAITING and REJECTED
// are status filters; CURRENT, PAST and FUTURE bucket bookings against the
// time of the call.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedState, s)
	}
}

// Condition returns the SQL predicate matching the state, with placeholders
// numbered from argIdx, and the arguments to bind. ALL yields no predicate.
// A booking whose start equals now is neither CURRENT, PAST nor FUTURE.
func (s State) Condition(argIdx int, now time.Time) (string, []any) {
	switch s {
	case StateCurrent:
		return fmt.Sprintf("b.start_date < $%d AND b.end_date > $%d", argIdx, argIdx+1), []any{now, now}
	case StatePast:
		return fmt.Sprintf("b.end_date < $%d", argIdx), []any{now}
	case StateFuture:
		return fmt.Sprintf("b.start_date > $%d", argIdx), []any{now}
	case StateWaiting, StateRejected:
		return fmt.Sprintf("b.status = $%d", argIdx), []any{string(s)}
	default:
		return "", nil
	}
}
