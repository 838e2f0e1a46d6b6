package bench_test

import (
	"errors"
)

var errScriptExhausted = errors.New("scripted timer exhausted")

// scriptedTimer implements timer.Timer. Each start/end pair of reads is
// separated by the next scripted sample, so Elapsed reproduces the script.
type scriptedTimer struct {
	samples []uint64
	next    int
	ticks   uint64
	reads   int
	// failAfter makes Now fail once this many reads succeeded. Zero disables it.
	failAfter int
}

func newScriptedTimer(samples ...uint64) *scriptedTimer {
	return &scriptedTimer{samples: samples}
}

func (s *scriptedTimer) Name() string { return "scripted" }

func (s *scriptedTimer) Now() (uint64, error) {
	if s.failAfter > 0 && s.reads >= s.failAfter {
		return 0, errors.New("clock read failed")
	}
	s.reads++

	// Start reads leave the clock alone; end reads advance it by the next sample.
	if s.reads%2 == 1 {
		return s.ticks, nil
	}
	if s.next >= len(s.samples) {
		return 0, errScriptExhausted
	}
	s.ticks += s.samples[s.next]
	s.next++
	return s.ticks, nil
}

func (s *scriptedTimer) Elapsed(start, end uint64) (uint64, error) {
	return end - start, nil
}

// repeat returns n copies of v.
func repeat(v uint64, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
