package domain

import "github.com/jonboulle/clockwork"

// clock stamps ParsedSection.ProcessedAt. Tests and the fixture generator
// freeze it through SetClock.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source used by ParseSection. Pass nil to go
// back to the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
