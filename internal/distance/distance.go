package distance

import (
	"context"
	"errors"
)

// ErrNoRoute is returned when the provider cannot route between the two
// addresses.
var ErrNoRoute = errors.New("no route between addresses")

// Result holds one-way figures; callers double them for round trips.
type Result struct {
	Miles   float64
	Minutes float64
}

type Lookup interface {
	Distance(ctx context.Context, origin, destination string) (Result, error)
}
