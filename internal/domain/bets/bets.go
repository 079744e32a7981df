// Package bets holds the mutating operations of the pool: prediction
// submission, official results, matchday management, and the manual
// levers admins pull. Every operation takes a state snapshot by value and
// returns a new one; callers own persistence and locking.
package bets

import "strings"

// WindowMode overrides the deadline-driven submission window of an event.
type WindowMode string

const (
	// WindowAuto leaves the window to the event deadline.
	WindowAuto WindowMode = "auto"
	// WindowOpen forces the window open past the deadline.
	WindowOpen WindowMode = "open"
	// WindowClosed forces the window shut before the deadline.
	WindowClosed WindowMode = "closed"
)

// predictionSlots is the fixed arity of pole-game predictions: three
// podium positions and three free-text questions.
const predictionSlots = 3

// pad grows a slice to the fixed slot count so stored predictions always
// carry one value per slot.
func pad(ss []string) []string {
	out := make([]string, predictionSlots)
	copy(out, ss)
	return out
}

func joined(ss []string) string {
	return strings.Join(ss, "|")
}
