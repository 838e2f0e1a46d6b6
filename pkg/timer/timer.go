// Package timer provides the time sources used to measure probe latency.
//
// Two sources are available:
//   - Monotonic reads a raw, non-adjustable monotonic clock in nanoseconds.
//   - CycleCounter reads the serialized time stamp counter and converts cycles
//     to nanoseconds using the CPU's base frequency.
//
// Both satisfy the Timer interface, so callers never see cycles.
package timer

import (
	"errors"
)

var (
	// ErrFrequencyUnavailable is returned when the CPU does not report its base frequency.
	// There is no safe default to assume, so callers must treat it as fatal.
	ErrFrequencyUnavailable = errors.New("cpu base frequency is unavailable")

	// ErrCycleCounterUnsupported is returned on architectures without a readable cycle counter.
	ErrCycleCounterUnsupported = errors.New("cycle counter is not supported on this architecture")
)

// Timer is a source of monotonically increasing ticks.
//
// Elapsed converts the distance between two ticks into nanoseconds.
// Any error returned by a Timer means the timebase cannot be trusted.
type Timer interface {
	// Name identifies the timer in logs and reports.
	Name() string
	// Now returns the current tick.
	Now() (uint64, error)
	// Elapsed returns the nanoseconds between start and end.
	Elapsed(start, end uint64) (uint64, error)
}

// New returns the cycle counter if useCycleCounter is set, otherwise the monotonic clock.
func New(useCycleCounter bool) Timer {
	if useCycleCounter {
		return NewCycleCounter()
	}
	return NewMonotonic()
}
