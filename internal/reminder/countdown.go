package reminder

import (
	"fmt"
	"time"
)

// FormatCountdown renders the time remaining until a snooze deadline as
// zero-padded hh:mm:ss, clamped at 00:00:00 once expired. Hours wrap at 24.
func FormatCountdown(until, now time.Time) string {
	d := until.Sub(now)
	if d <= 0 {
		return "00:00:00"
	}
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
