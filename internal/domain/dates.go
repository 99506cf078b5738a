package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd) share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights counts whole calendar days between check-in and check-out; it may be zero or negative.
// It works on Unix seconds because time.Duration saturates after about 292 years.
func Nights(checkIn, checkOut time.Time) int {
	return int((Day(checkOut).Unix() - Day(checkIn).Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, ErrInvalidInput)
}
