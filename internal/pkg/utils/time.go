package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClockToMinutes converts an "HH:MM" wall-clock time to minutes since midnight.
func ParseClockToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in clock time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in clock time %q", clock)
	}
	return hours*60 + minutes, nil
}

func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayName returns the lower-case english weekday used as opening-hours key.
func DayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}

func ParseDateOnly(date string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, date, time.Local)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
