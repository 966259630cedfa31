package distance

import "context"

// MockLookup serves fixed figures when no mapping API key is configured.
type MockLookup struct {
	Miles   float64
	Minutes float64
	Err     error
}

func (m MockLookup) Distance(ctx context.Context, origin, destination string) (Result, error) {
	if m.Err != nil {
		return Result{}, m.Err
	}
	return Result{Miles: m.Miles, Minutes: m.Minutes}, nil
}
