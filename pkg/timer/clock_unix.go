//go:build linux || darwin

package timer

import (
	"golang.org/x/sys/unix"
)

// readMonotonic reads CLOCK_MONOTONIC_RAW.
// Plain CLOCK_MONOTONIC only has microsecond precision on darwin and is slewed by NTP on linux.
func readMonotonic() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return 0, err
	}
	return uint64(ts.Nano()), nil
}
