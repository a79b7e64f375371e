package alarm

import "time"

// Clock abstracts time.Now so alarm evaluation is deterministic in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}
