package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	DefaultClock = "00:00"
)

func NowUnixMillis() int64 { return time.Now().UnixMilli() }

var (
	// 2025-02-15T07:05:00, 2025-02-15 07:05, with optional zone or fraction
	isoClockPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ](\d{1,2}):(\d{1,2})`)
	// 7:05 PM, 07:05:33 a.m.
	meridiemPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::\d{1,2}(?:\.\d+)?)?\s*([AaPp])\.?\s*[Mm]\.?$`)
	// 19:23, 19:23:10, 19:23.0420..., 22:3.606127428290847
	leadingClockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})`)
	// 1905
	compactClockPattern = regexp.MustCompile(`^(\d{2})(\d{2})$`)
	// anything else carrying a clock somewhere inside it
	embeddedClockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// NormalizeClock canonicalises upstream time strings to 24-hour HH:MM.
// It never fails: input it cannot read yields DefaultClock.
func NormalizeClock(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultClock
	}

	if m := isoClockPattern.FindStringSubmatch(s); m != nil {
		if out, ok := formatClock(m[1], m[2], ""); ok {
			return out
		}
	}
	if m := meridiemPattern.FindStringSubmatch(s); m != nil {
		if out, ok := formatClock(m[1], m[2], strings.ToLower(m[3])); ok {
			return out
		}
	}
	if m := leadingClockPattern.FindStringSubmatch(s); m != nil {
		if out, ok := formatClock(m[1], m[2], ""); ok {
			return out
		}
	}
	if m := compactClockPattern.FindStringSubmatch(s); m != nil {
		if out, ok := formatClock(m[1], m[2], ""); ok {
			return out
		}
	}
	if m := embeddedClockPattern.FindStringSubmatch(s); m != nil {
		if out, ok := formatClock(m[1], m[2], ""); ok {
			return out
		}
	}
	return DefaultClock
}

func formatClock(hourStr, minuteStr, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return "", false
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ParseDate reads a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// NightsBetween rounds partial days up, so a late checkout still counts as a night.
func NightsBetween(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
