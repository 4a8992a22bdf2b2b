package info

import (
	"fmt"
	"time"
)

// Uptime returns the whole seconds elapsed between start and now together with
// a "<H> hours, <M> minutes" rendering of the same value.
//
// A now earlier than start yields zero.
func Uptime(start, now time.Time) (int64, string) {
	seconds := int64(now.Sub(start) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return seconds, FormatUptime(seconds)
}

// FormatUptime renders a number of seconds as "<H> hours, <M> minutes".
func FormatUptime(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
}
