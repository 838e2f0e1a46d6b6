package bench

// Params controls the convergence sampler. It is built once from validated
// configuration and never modified.
type Params struct {
	// K is the number of smallest samples retained in the window.
	K int
	// MaxSamples caps the number of timed attempts per measurement.
	MaxSamples int
	// ShiftSamples is the period, in accepted samples, at which the window's
	// minimum is evicted. Zero disables eviction.
	ShiftSamples int
	// Denom and BaseSpread form the convergence threshold: min/Denom + BaseSpread.
	Denom      uint64
	BaseSpread uint64
	// PrimeCache runs the probe once, untimed, before measuring.
	PrimeCache bool
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		K:            5,
		MaxSamples:   500,
		ShiftSamples: 50,
		Denom:        100,
		BaseSpread:   2,
		PrimeCache:   true,
	}
}
