package timer

const cycleCounterSupported = true

// rdtsc reads the time stamp counter with an LFENCE on both sides, so the read
// is not reordered with the work being measured.
func rdtsc() uint64
