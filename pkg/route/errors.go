package route

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned when a search exhausts without reaching the
// target. It is a user-visible condition, not a bug.
var ErrNoRoute = errors.New("no route found")

// ErrProgramming marks invariant violations: a vertex missing from the
// graph or a predecessor missing from a visited map after a successful
// search. Callers should treat it as a bug.
var ErrProgramming = errors.New("routing invariant violated")

func noRoutef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNoRoute)...)
}

func programmingf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrProgramming)...)
}
