package bench

import (
	"slices"
	"time"
)

// Durations is a set of timing observations, such as back-to-back timer reads.
type Durations []time.Duration

// Summary condenses Durations into the figures worth reporting.
type Summary struct {
	Min, Median, Avg, P99, Max time.Duration
}

// Summary computes all figures over a single sorted copy.
func (ds Durations) Summary() Summary {
	if len(ds) == 0 {
		return Summary{}
	}

	sorted := ds.sorted()
	return Summary{
		Min:    sorted[0],
		Median: median(sorted),
		Avg:    ds.Average(),
		P99:    percentile(sorted, 99),
		Max:    sorted[len(sorted)-1],
	}
}

// Average calculates the mean of a slice of time.Duration values.
func (ds Durations) Average() time.Duration {
	if len(ds) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

// Median finds the middle value of the observations.
func (ds Durations) Median() time.Duration {
	if len(ds) == 0 {
		return 0
	}
	return median(ds.sorted())
}

// Percentile calculates the Pxx value.
// Given percentile should be between 0 and 100.
func (ds Durations) Percentile(p float64) time.Duration {
	if len(ds) == 0 || p < 0 || p > 100 {
		return 0
	}
	return percentile(ds.sorted(), p)
}

func (ds Durations) sorted() []time.Duration {
	sorted := slices.Clone(ds)
	slices.Sort(sorted)
	return sorted
}

func median(sorted []time.Duration) time.Duration {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	index := int(float64(len(sorted)-1) * (p / 100.0))
	return sorted[index]
}
