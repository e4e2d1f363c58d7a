// Package biztime provides the business timezone used for ticket timestamps.
//
// Timestamps are kept as time.Time in UTC inside the application. The legacy
// flat files and the HTML pages show them as "YYYY-MM-DD HH:MM" wall-clock
// values in the business timezone, so conversion happens only at those edges.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Sao_Paulo"

	// MinuteLayout is the minute-precision layout stored in the tickets file.
	MinuteLayout = "2006-01-02 15:04"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error

	// nowFunc is swapped in tests to pin the clock.
	nowFunc = time.Now
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to America/Sao_Paulo.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location.
// Falls back to UTC when the default zone is missing from the host tzdata.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			return time.UTC
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return nowFunc().UTC()
}

// NowMinute returns the current instant truncated to the minute, in UTC.
func NowMinute() time.Time {
	return NowUTC().Truncate(time.Minute)
}

// FormatMinute renders t as a business-timezone "YYYY-MM-DD HH:MM" string.
func FormatMinute(t time.Time) string {
	return t.In(Location()).Format(MinuteLayout)
}

// ParseMinute parses a "YYYY-MM-DD HH:MM" wall-clock value in the business
// timezone and returns the UTC instant.
func ParseMinute(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MinuteLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// SetNowForTest pins the clock and returns a restore func.
func SetNowForTest(fn func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}
