package format

import (
	"fmt"
	"time"
)

// RelativeTime describes how long before now t was, in Indonesian
// ("5 menit yang lalu"). Months are 30 days and years 12 months.
func RelativeTime(t, now time.Time) string {
	seconds := int(now.Sub(t) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d detik yang lalu", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d menit yang lalu", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d jam yang lalu", hours)
	}
	days := hours / 24
	if days < 30 {
		return fmt.Sprintf("%d hari yang lalu", days)
	}
	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%d bulan yang lalu", months)
	}
	return fmt.Sprintf("%d tahun yang lalu", months/12)
}
