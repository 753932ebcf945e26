// Package biztime centralizes time handling. All storage and transport use
// UTC; the business timezone only matters for date boundary reporting.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
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

// Location returns the business timezone location, initializing with the
// default if Init was never called.
func Location() *time.Location {
	bizLocationOnce.Do(func() {
		bizLocation, initErr = time.LoadLocation(DefaultTimezone)
	})
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// NowInBizLocation returns the current time in the business timezone.
func NowInBizLocation() time.Time {
	return time.Now().In(Location())
}
