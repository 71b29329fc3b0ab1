package domain

import "time"

// Clock abstracts wall-clock access so every time-dependent decision in
// the core can be driven by a fixed time source in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
