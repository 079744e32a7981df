package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/birreros/porra/internal/seed"
	"github.com/birreros/porra/pkg/logger"
)

const (
	defaultParticipants = "Antonio,Carlos,Manrique,Pere,Toni"
	defaultRaces        = 5
	defaultJornadas     = 3
	defaultTimeout      = 30 * time.Second
	runTimeout          = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		participants = flag.String("participants", defaultParticipants, "Comma-separated participant names")
		numRaces     = flag.Int("races", defaultRaces, "Races to bet on and resolve")
		numJornadas  = flag.Int("jornadas", defaultJornadas, "Matchdays to create, bet on, and resolve")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		randSeed     = flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	names := strings.Split(*participants, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	cfg := &seed.Config{
		BaseURL:      *baseURL,
		Participants: names,
		NumRaces:     *numRaces,
		NumJornadas:  *numJornadas,
		Timeout:      *timeout,
		Seed:         *randSeed,
	}
	if _, err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
