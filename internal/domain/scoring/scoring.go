// Package scoring computes per-event scores from predictions and official
// results. All functions are pure reductions over a state snapshot: they
// never mutate their inputs and never fail on missing or malformed data —
// absent predictions, pending results, and null goal counts all resolve
// to well-formed zero-value breakdowns.
package scoring

import "strings"

// Point values shared by both games.
const (
	exactScorePoints = 3
	signPoints       = 1
	questionPoints   = 2

	podiumBonus    = 2
	fullHouseBonus = 2

	incompletePenalty  = -1
	latePenalty        = -3
	missedPenalty      = -2
	catastrophePenalty = -1

	// Tie-break position for a predicted driver absent from the official
	// podium, and the tie-break sum reported for a missing prediction.
	tbUnplaced   = 99
	tbMissingBet = 999
)

// MaxJornadaPoints is the football per-event ceiling: 4 matches at 3
// points plus 3 questions at 2 points.
const MaxJornadaPoints = 18

// Item is one human-readable line of a score breakdown, for audit display.
type Item struct {
	Label string `json:"label"`
	Delta int    `json:"delta"`
}

// normAnswer folds a free-text answer for comparison: trimmed and
// case-insensitive.
func normAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
