package core

import "time"

// Duration is an elapsed time measured by a TimeProvider
type Duration time.Duration

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Milliseconds is the unit processing times are stored in
func (d Duration) Milliseconds() int64 {
	return time.Duration(d).Milliseconds()
}

// TimeProvider is the clock used for record timestamps, credit ledger rows and
// rate limit windows. Implementations return UTC.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
}
