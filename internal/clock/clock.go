package clock

import "time"

// Clock is the time source used for token expiry decisions.
// Injecting it keeps expiry-boundary behavior testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns the wall-clock backed Clock used in production.
func System() Clock {
	return systemClock{}
}
