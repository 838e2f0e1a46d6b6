package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shivanshkc/mountain/pkg/mountain"
	"github.com/shivanshkc/mountain/pkg/probe"
)

const (
	// maxSizePower caps the buffer at 4 GB.
	maxSizePower = 32
	// minSizePower is one int32 element.
	minSizePower = 2
)

// validateSweepConfig validates the configuration of the sweep.
// It returns an empty string if the configuration is usable.
func validateSweepConfig(c Config) string {
	if message := validateSweep(c.Sweep); message != "" {
		return message
	}
	if message := validateSampler(c.Sampler); message != "" {
		return message
	}

	// Format must be known.
	if !slices.Contains(mountain.Formats(), strings.ToLower(c.Output.Format)) {
		return fmt.Sprintf("Unknown format %q, expected one of %s.", c.Output.Format, strings.Join(mountain.Formats(), ", "))
	}

	return ""
}

// validateSweep validates the grid and kernel.
func validateSweep(s SweepConfig) string {
	// Sizes must stay within the safety ceiling.
	if s.MinSizeP2 > maxSizePower {
		return fmt.Sprintf("Minimum size cannot be greater than %d bytes, choose a power no larger than %d.", uint64(1)<<maxSizePower, maxSizePower)
	}
	if s.MaxSizeP2 > maxSizePower {
		return fmt.Sprintf("Maximum size cannot be greater than %d bytes, choose a power no larger than %d.", uint64(1)<<maxSizePower, maxSizePower)
	}

	// The smallest working set must hold at least one element.
	if s.MinSizeP2 < minSizePower {
		return fmt.Sprintf("Minimum size must be at least 2^%d bytes.", minSizePower)
	}

	if s.MinSizeP2 > s.MaxSizeP2 {
		return "Max size must be greater than or equal to min size."
	}

	if s.StartStride == 0 {
		return "Start stride must be at least 1."
	}

	// A zero interval would never reach the end stride.
	if s.StrideInterval == 0 {
		return "Stride interval must be at least 1."
	}

	if s.StartStride > s.EndStride {
		return "Start stride must be less than or equal to end stride."
	}

	if s.EndStride > s.StartStride && s.EndStride-s.StartStride < s.StrideInterval {
		return "Stride interval must be less than or equal to the difference between the start and end stride."
	}

	if _, err := probe.ParseKernel(s.Kernel); err != nil {
		return "Invalid kernel: " + err.Error()
	}

	return ""
}

// validateSampler validates the convergence parameters.
func validateSampler(s SamplerConfig) string {
	// At least one sample must be retained.
	if s.Samples < 1 {
		return "Samples must be at least 1."
	}

	if s.MaxSamples < s.Samples {
		return "Max samples must be greater than or equal to samples."
	}

	if s.ShiftSamples < 0 {
		return "Shift samples cannot be negative."
	}

	// Denom is a divisor.
	if s.Denom == 0 {
		return "Denom must be greater than 0."
	}

	return ""
}
