package timer

import (
	"context"
	"fmt"
	"time"
)

// MeasureCycleRate estimates the cycle counter's rate in MHz by counting cycles
// across a sleep of duration d, timed by the monotonic clock.
//
// The result is compared against the CPUID base frequency to check that the
// counter is invariant and the conversion factor is sane.
func MeasureCycleRate(ctx context.Context, counter *CycleCounter, clock *Monotonic, d time.Duration) (float64, error) {
	startNs, err := clock.Now()
	if err != nil {
		return 0, err
	}
	startCycles, err := counter.Cycles()
	if err != nil {
		return 0, err
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return 0, ctx.Err()
	case <-timer.C:
	}

	endCycles, err := counter.Cycles()
	if err != nil {
		return 0, err
	}
	endNs, err := clock.Now()
	if err != nil {
		return 0, err
	}

	elapsedNs, _ := clock.Elapsed(startNs, endNs)
	if elapsedNs == 0 {
		return 0, fmt.Errorf("monotonic clock did not advance over %s", d)
	}

	// cycles per nanosecond is GHz; scale to MHz.
	return float64(endCycles-startCycles) / float64(elapsedNs) * 1000, nil
}
