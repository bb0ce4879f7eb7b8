package memory

import "time"

// nowUTC is truncated to microseconds to match PostgreSQL timestamp precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
