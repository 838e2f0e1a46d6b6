package bench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivanshkc/mountain/pkg/timer"
)

// ProbeFunc is the unit of work being timed. The sampler never inspects it.
type ProbeFunc func()

// Result is the outcome of one measurement.
type Result struct {
	// Nanoseconds is the smallest sample in the final window.
	Nanoseconds uint64
	// Attempts is the number of timed probe invocations.
	Attempts int
	// Converged is false if the measurement stopped at MaxSamples.
	Converged bool
	// Evictions counts how often the window minimum was shifted out.
	Evictions int
}

// Sampler repeatedly times a probe until the k smallest samples agree.
//
// A Sampler is not safe for concurrent use; measurements are meant to run
// one at a time on a quiet thread.
type Sampler struct {
	params Params
	timer  timer.Timer
	logger *slog.Logger
}

// NewSampler creates a Sampler. A nil logger means slog.Default().
func NewSampler(params Params, t timer.Timer, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{params: params, timer: t, logger: logger}
}

// Measure returns a robust latency estimate for the probe.
//
// It stops once the window is full and its spread falls below the threshold,
// or after MaxSamples attempts, whichever comes first. The only errors are
// timer failures, which mean no measurement can be trusted.
func (s *Sampler) Measure(probe ProbeFunc) (Result, error) {
	// Warm the caches. This run is never counted.
	if s.params.PrimeCache {
		probe()
	}

	// Trace records are only built when someone is listening.
	trace := s.logger.Enabled(context.Background(), slog.LevelDebug)

	window := NewWindow(s.params.K)
	var result Result

	for {
		// Eviction is gated on the count before this attempt.
		if s.shouldShift(result.Attempts) {
			if trace {
				s.logger.Debug("shifting window", "count", result.Attempts, "evicted", window.Min())
			}
			window.EvictMinimum()
			result.Evictions++
		}

		elapsed, err := s.timeOnce(probe)
		if err != nil {
			return Result{}, err
		}

		window.Insert(elapsed)
		result.Attempts++

		minimum, maximum, threshold := window.Spread(s.params.Denom, s.params.BaseSpread)
		converged := result.Attempts >= s.params.K && maximum-minimum < threshold

		if trace {
			s.logger.Debug("convergence check",
				"count", result.Attempts,
				"elapsed", elapsed,
				"window", window.Values(),
				"delta", maximum-minimum,
				"threshold", threshold,
				"converged", converged)
		}

		if converged {
			result.Converged = true
			break
		}
		if result.Attempts >= s.params.MaxSamples {
			break
		}
	}

	result.Nanoseconds = window.Min()
	return result, nil
}

// shouldShift reports whether the window minimum is evicted before the next attempt.
func (s *Sampler) shouldShift(count int) bool {
	return s.params.ShiftSamples != 0 &&
		count >= s.params.K &&
		count%s.params.ShiftSamples == 0
}

// timeOnce runs the probe between two timer reads.
func (s *Sampler) timeOnce(probe ProbeFunc) (uint64, error) {
	start, err := s.timer.Now()
	if err != nil {
		return 0, fmt.Errorf("error starting %s timer: %w", s.timer.Name(), err)
	}
	probe()
	end, err := s.timer.Now()
	if err != nil {
		return 0, fmt.Errorf("error stopping %s timer: %w", s.timer.Name(), err)
	}

	elapsed, err := s.timer.Elapsed(start, end)
	if err != nil {
		return 0, fmt.Errorf("error converting %s ticks: %w", s.timer.Name(), err)
	}
	return elapsed, nil
}
