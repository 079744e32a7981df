package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/birreros/porra/internal/domain/model"
)

// Sample pools the generator draws from.
var (
	sampleDrivers = []string{
		"Verstappen", "Norris", "Leclerc", "Piastri", "Sainz",
		"Hamilton", "Russell", "Alonso", "Gasly", "Albon",
	}
	sampleTeams = []string{
		"Athletic", "Atlético", "Barcelona", "Betis",
		"Girona", "Real Madrid", "Real Sociedad", "Sevilla",
	}
	sampleAnswers = []string{"sí", "no", "Verstappen", "Alonso", "2", "safety car"}
)

// Generator produces random but plausible pool data. A fixed seed yields
// a reproducible season.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator from a seed; zero seeds from the
// clock.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// RaceBet picks a pole, a podium of distinct drivers, and three answers.
func (g *Generator) RaceBet() (pole string, podium []string, answers []string) {
	perm := g.rnd.Perm(len(sampleDrivers))
	pole = sampleDrivers[perm[0]]
	podium = []string{sampleDrivers[perm[0]], sampleDrivers[perm[1]], sampleDrivers[perm[2]]}
	answers = []string{g.answer(), g.answer(), g.answer()}
	return pole, podium, answers
}

// RaceResult builds an official race outcome.
func (g *Generator) RaceResult() (pole string, podium []string, answers []string) {
	return g.RaceBet()
}

// Jornada builds a matchday with four fixtures from the team pool and a
// deadline in the past so results can follow immediately.
func (g *Generator) Jornada(n int) model.Jornada {
	perm := g.rnd.Perm(len(sampleTeams))
	matches := make([]model.Fixture, 4)
	for i := range matches {
		matches[i] = model.Fixture{Home: sampleTeams[perm[2*i]], Away: sampleTeams[perm[2*i+1]]}
	}
	deadline := time.Now().Add(-time.Duration(n+1) * 24 * time.Hour)
	return model.Jornada{
		ID:       fmt.Sprintf("j%02d", n+1),
		Name:     fmt.Sprintf("Jornada %d", n+1),
		Deadline: &deadline,
		Matches:  matches,
	}
}

// Questions builds a question sheet for a matchday.
func (g *Generator) Questions(n int) []string {
	return []string{
		fmt.Sprintf("¿Quién gana el partido %d?", g.rnd.Intn(4)+1),
		"¿Habrá algún empate?",
		"¿Cuántos goles en total?",
	}
}

// Scorelines builds four complete scorelines.
func (g *Generator) Scorelines() []model.Goals {
	out := make([]model.Goals, 4)
	for i := range out {
		out[i] = model.Goals{Home: model.IntPtr(g.rnd.Intn(4)), Away: model.IntPtr(g.rnd.Intn(4))}
	}
	return out
}

// FutbolAnswers builds three question answers.
func (g *Generator) FutbolAnswers() []string {
	return []string{g.answer(), g.answer(), g.answer()}
}

func (g *Generator) answer() string {
	return sampleAnswers[g.rnd.Intn(len(sampleAnswers))]
}
