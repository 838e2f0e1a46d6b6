package bench

import (
	"time"

	"github.com/shivanshkc/mountain/pkg/timer"
)

// TimerOverhead times n empty measurements with t, i.e. the cost of two
// back-to-back reads plus the conversion. It bounds the smallest latency the
// timer can meaningfully resolve.
func TimerOverhead(t timer.Timer, n int) (Durations, error) {
	out := make(Durations, 0, n)
	for range n {
		start, err := t.Now()
		if err != nil {
			return nil, err
		}
		end, err := t.Now()
		if err != nil {
			return nil, err
		}

		elapsed, err := t.Elapsed(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, time.Duration(elapsed))
	}
	return out, nil
}
