package timer

import (
	"fmt"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// FrequencySource reports the processor's base frequency in MHz.
// Zero means the frequency is unknown.
type FrequencySource interface {
	BaseFrequencyMHz() uint64
}

// CPUIDFrequency reads the base frequency from the CPU identification instructions.
type CPUIDFrequency struct{}

// BaseFrequencyMHz implements FrequencySource.
func (CPUIDFrequency) BaseFrequencyMHz() uint64 {
	if cpuid.CPU.Hz <= 0 {
		return 0
	}
	return uint64(cpuid.CPU.Hz / 1_000_000)
}

// CycleCounter reads the time stamp counter and converts cycles to nanoseconds.
//
// The base frequency is queried on first use and cached for the lifetime of the
// counter, including a failed query. It is never recomputed.
type CycleCounter struct {
	read      func() uint64
	supported bool
	frequency FrequencySource

	calibrateOnce sync.Once
	// tenthsGHz is the base frequency in tenths of a GHz (2900 MHz -> 29).
	tenthsGHz    uint64
	calibrateErr error
}

// NewCycleCounter returns a CycleCounter backed by the hardware counter and CPUID.
func NewCycleCounter() *CycleCounter {
	return newCycleCounter(rdtsc, cycleCounterSupported, CPUIDFrequency{})
}

func newCycleCounter(read func() uint64, supported bool, frequency FrequencySource) *CycleCounter {
	return &CycleCounter{read: read, supported: supported, frequency: frequency}
}

// Name implements Timer.
func (c *CycleCounter) Name() string {
	return "rdtsc"
}

// Now implements Timer. The first call calibrates the counter.
func (c *CycleCounter) Now() (uint64, error) {
	if err := c.calibrate(); err != nil {
		return 0, err
	}
	return c.read(), nil
}

// Elapsed implements Timer.
func (c *CycleCounter) Elapsed(start, end uint64) (uint64, error) {
	if err := c.calibrate(); err != nil {
		return 0, err
	}
	return (end - start) * 10 / c.tenthsGHz, nil
}

// Cycles returns the raw counter value without converting or calibrating.
func (c *CycleCounter) Cycles() (uint64, error) {
	if !c.supported {
		return 0, ErrCycleCounterUnsupported
	}
	return c.read(), nil
}

// BaseFrequencyMHz returns the calibrated base frequency, rounded down to a tenth of a GHz.
func (c *CycleCounter) BaseFrequencyMHz() (uint64, error) {
	if err := c.calibrate(); err != nil {
		return 0, err
	}
	return c.tenthsGHz * 100, nil
}

func (c *CycleCounter) calibrate() error {
	c.calibrateOnce.Do(func() {
		if !c.supported {
			c.calibrateErr = ErrCycleCounterUnsupported
			return
		}

		mhz := c.frequency.BaseFrequencyMHz()
		// Anything below 100 MHz truncates to zero tenths and cannot be used as a divisor.
		if mhz/100 == 0 {
			c.calibrateErr = fmt.Errorf("%w: cpuid reported %d MHz", ErrFrequencyUnavailable, mhz)
			return
		}
		c.tenthsGHz = mhz / 100
	})
	return c.calibrateErr
}
