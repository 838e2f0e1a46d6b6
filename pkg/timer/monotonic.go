package timer

import (
	"fmt"
)

// Monotonic reads a raw monotonic clock. Ticks are nanoseconds.
type Monotonic struct {
	read func() (uint64, error)
}

// NewMonotonic returns a Monotonic backed by the platform clock.
func NewMonotonic() *Monotonic {
	return &Monotonic{read: readMonotonic}
}

// Name implements Timer.
func (m *Monotonic) Name() string {
	return "monotonic"
}

// Now implements Timer.
func (m *Monotonic) Now() (uint64, error) {
	ticks, err := m.read()
	if err != nil {
		return 0, fmt.Errorf("error reading current time: %w", err)
	}
	return ticks, nil
}

// Elapsed implements Timer.
func (m *Monotonic) Elapsed(start, end uint64) (uint64, error) {
	return end - start, nil
}
