package game

import (
	"context"
	"testing"
	"time"

	"github.com/peterkuimelis/lifecards/internal/log"
)

// ScriptedPlayer is a Player that follows a predefined list of choices.
// Once the script runs out it picks the first card of every hand.
type ScriptedPlayer struct {
	t       *testing.T
	name    string
	choices []Choice
	pos     int

	hands  []Hand
	events []log.GameEvent

	// onChoose runs inside ChooseCards, before the choice is returned.
	onChoose func()
}

func NewScriptedPlayer(t *testing.T, name string) *ScriptedPlayer {
	return &ScriptedPlayer{t: t, name: name}
}

func (sp *ScriptedPlayer) AddChoice(indices ...int) *ScriptedPlayer {
	sp.choices = append(sp.choices, Choice{Indices: indices})
	return sp
}

func (sp *ScriptedPlayer) AddEndLife() *ScriptedPlayer {
	sp.choices = append(sp.choices, Choice{EndLife: true})
	return sp
}

func (sp *ScriptedPlayer) ChooseCards(ctx context.Context, state GameState, hand Hand) (Choice, error) {
	sp.hands = append(sp.hands, hand)
	if sp.onChoose != nil {
		sp.onChoose()
	}
	if sp.pos >= len(sp.choices) {
		return Choice{Indices: []int{0}}, nil
	}
	c := sp.choices[sp.pos]
	sp.pos++
	return c, nil
}

func (sp *ScriptedPlayer) Notify(ctx context.Context, event log.GameEvent) error {
	sp.events = append(sp.events, event)
	return nil
}

// seqRNG replays fixed values. Float64 and Intn cycle through their own
// sequences (0 when empty); Shuffle leaves the order unchanged unless a
// reversal is requested.
type seqRNG struct {
	floats  []float64
	ints    []int
	fpos    int
	ipos    int
	reverse bool
}

func (r *seqRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fpos%len(r.floats)]
	r.fpos++
	return v
}

func (r *seqRNG) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ipos%len(r.ints)]
	r.ipos++
	return v % n
}

func (r *seqRNG) Shuffle(n int, swap func(i, j int)) {
	if !r.reverse {
		return
	}
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

var testEpoch = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testEpoch }

// --- Test card helpers ---

func beneficialCard(id string, rate float64, effect Effect) *Card {
	return &Card{ID: id, Name: id, Category: CategoryBeneficial, BaseRate: rate, Effect: effect}
}

func harmfulCard(id string, rate float64, effect Effect) *Card {
	return &Card{ID: id, Name: id, Category: CategoryHarmful, BaseRate: rate, Effect: effect}
}

func mustCatalog(t *testing.T, cards ...*Card) *Catalog {
	t.Helper()
	c, err := NewCatalog(cards...)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// newTestEngine builds an engine over a catalog with a seeded PRNG and a
// fixed clock.
func newTestEngine(t *testing.T, catalog *Catalog, seed int64) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e, err := NewEngine(EngineConfig{
		Catalog: catalog,
		Seed:    seed,
		Logger:  logger,
		Clock:   fixedClock,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, logger
}

// plainStart overrides every starting value and clears starting effects.
func plainStart(wealth, goodness, ability float64, age int) *StatusOverrides {
	return &StatusOverrides{
		Wealth:   &wealth,
		Goodness: &goodness,
		Ability:  &ability,
		Age:      &age,
		Effects:  map[EffectKind]int{},
	}
}

func dumpLog(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("\n%s", log.FormatAll(logger.Events()))
}
