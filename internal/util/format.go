package util

import "fmt"

const (
	// SecondsPerMinute is the number of seconds in a minute.
	SecondsPerMinute = 60
	// SecondsPerHour is the number of seconds in an hour.
	SecondsPerHour = 3600
)

// FormatDuration formats seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??"
	}

	totalSecs := int64(seconds)
	hours := totalSecs / SecondsPerHour
	minutes := (totalSecs % SecondsPerHour) / SecondsPerMinute
	secs := totalSecs % SecondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
