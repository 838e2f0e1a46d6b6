//go:build !linux && !darwin

package timer

import (
	"time"
)

// epoch anchors the runtime's monotonic clock reading.
var epoch = time.Now()

func readMonotonic() (uint64, error) {
	return uint64(time.Since(epoch)), nil
}
