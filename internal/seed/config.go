// Package seed fills a running pool with demo data over its HTTP API:
// participants, race bets, matchdays, scorelines, and official results.
// Useful for trying the service out and for eyeballing standings math
// against a populated season.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants []string      // Names to register
	NumRaces     int           // Races to bet on and resolve
	NumJornadas  int           // Matchdays to create, bet on, and resolve
	Timeout      time.Duration // HTTP request timeout
	Seed         int64         // Random seed; 0 picks one from the clock
}

// Stats holds counters from a seeding run.
type Stats struct {
	ParticipantsCreated int
	RaceBetsSubmitted   int
	JornadasCreated     int
	FutbolBetsSubmitted int
	ResultsPublished    int
	Failed              int
	Duration            time.Duration
}
