package miscutils

import (
	"fmt"
	"time"
)

// FormatDuration renders d with a unit suited to its magnitude.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	// Format based on magnitude.
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%.0fns", float64(d.Nanoseconds()))
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fμs", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1000000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// FormatBytes renders a byte count with a binary unit, e.g. 32768 -> "32K".
// Exact multiples are printed without decimals, which keeps power-of-two
// working-set sizes short.
func FormatBytes(n uint64) string {
	const units = "KMGTPE"

	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}

	value, unit := n, -1
	for value >= 1024 && value%1024 == 0 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if value < 1024 {
		return fmt.Sprintf("%d%c", value, units[unit])
	}

	// Not an exact multiple: fall back to one decimal place.
	f, unit := float64(n), -1
	for f >= 1024 && unit < len(units)-1 {
		f /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f%c", f, units[unit])
}
