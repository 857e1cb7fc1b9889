package presenter

import "github.com/jonboulle/clockwork"

// clock stamps ViewHandle.CreatedAt; tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for view creation. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
