package track

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxMinutes bounds the minutes field well below time.Duration overflow.
const maxMinutes = 1_000_000

// ParseDuration parses "MM:SS". Minutes may exceed 59 (and two digits);
// seconds must be exactly two digits in 00..59.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	minStr, secStr, ok := strings.Cut(s, ":")
	if !ok || minStr == "" || len(secStr) != 2 {
		return 0, &ValidationError{Field: "duration", Reason: fmt.Sprintf("%q is not MM:SS", s)}
	}
	if !allDigits(minStr) || !allDigits(secStr) {
		return 0, &ValidationError{Field: "duration", Reason: fmt.Sprintf("%q is not MM:SS", s)}
	}
	minutes, err := strconv.Atoi(minStr)
	if err != nil || minutes > maxMinutes {
		return 0, &ValidationError{Field: "duration", Reason: fmt.Sprintf("minutes out of range in %q", s)}
	}
	seconds, _ := strconv.Atoi(secStr)
	if seconds > 59 {
		return 0, &ValidationError{Field: "duration", Reason: fmt.Sprintf("seconds out of range in %q", s)}
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// FormatDuration renders a duration as "MM:SS", truncating sub-second parts.
// Totals of an hour or more keep counting minutes ("75:00").
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatLong renders a duration as "X hr Y min Z sec" (hours omitted when zero).
func FormatLong(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d hr %d min %d sec", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d min %d sec", minutes, seconds)
}

func allDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
