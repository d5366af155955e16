package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/peterkuimelis/lifecards/internal/log"
)

// scriptedEngine builds an engine over cards whose draws are fully
// determined: every Float64 is 0, so each weighted pick takes the first
// drawable card in id order, and shuffles keep their order.
func scriptedEngine(t *testing.T, handSize int, cards ...*Card) (*Engine, *log.MemoryLogger) {
	t.Helper()
	tuning := DefaultTuning()
	tuning.HandSize = handSize
	logger := log.NewMemoryLogger()
	e, err := NewEngine(EngineConfig{
		Catalog: mustCatalog(t, cards...),
		Tuning:  &tuning,
		RNG:     &seqRNG{},
		Logger:  logger,
		Clock:   fixedClock,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, logger
}

func mustInit(t *testing.T, e *Engine, o *StatusOverrides) GameState {
	t.Helper()
	gs, err := e.Initialize("Alice", o)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return gs
}

func mustDraw(t *testing.T, e *Engine) Hand {
	t.Helper()
	h, err := e.DrawCards()
	if err != nil {
		t.Fatalf("DrawCards: %v", err)
	}
	return h
}

func mustSelect(t *testing.T, e *Engine, cards ...*Card) TurnResult {
	t.Helper()
	res, err := e.SelectCards(cards, nil)
	if err != nil {
		t.Fatalf("SelectCards: %v", err)
	}
	return res
}

func TestInitializeRanges(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 5)
	rolled := map[EffectKind]int{}
	for i := 0; i < 300; i++ {
		gs, err := e.Initialize("Bob", nil)
		if err != nil {
			t.Fatalf("Initialize: %v", err)
		}
		s := gs.Status
		if s.Wealth < -500 || s.Wealth > 1000 || s.Goodness < -50 || s.Goodness > 100 ||
			s.Ability < 0 || s.Ability > 100 || s.Age < 18 || s.Age > 22 {
			t.Fatalf("out of range: %s", s)
		}
		if gs.Turn != 1 || len(gs.History) != 0 || gs.Over || gs.PlayerID == "" {
			t.Fatalf("bad initial state: %+v", gs)
		}
		if lvl := s.Level(EffectAllowance); lvl != 0 && (lvl < 1 || lvl > 40) {
			t.Fatalf("allowance level %d", lvl)
		}
		if lvl := s.Level(EffectPassiveIncome); lvl > 10 {
			t.Fatalf("passive income level %d", lvl)
		}
		if lvl := s.Level(EffectTrauma); lvl > 3 {
			t.Fatalf("trauma level %d", lvl)
		}
		for k := range s.Effects {
			rolled[k]++
		}
	}
	// Rolls are independent: each effect shows up at roughly its chance.
	if rolled[EffectAllowance] < 100 || rolled[EffectTrauma] < 70 || rolled[EffectPassiveIncome] == 0 {
		t.Errorf("starting effect frequencies look wrong: %v", rolled)
	}
	if rolled[EffectCompound] != 0 || rolled[EffectSecurity] != 0 {
		t.Errorf("unexpected starting effects: %v", rolled)
	}
	if e.Phase() != PhaseAwaitingSelection {
		t.Errorf("phase = %s", e.Phase())
	}
}

func TestInitializeOverrides(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 1)
	gs := mustInit(t, e, plainStart(5e15, -3, 7, 60))
	if gs.Status.Wealth != WealthCap {
		t.Errorf("override wealth not clamped: %g", gs.Status.Wealth)
	}
	if gs.Status.Goodness != -3 || gs.Status.Ability != 7 || gs.Status.Age != 60 || len(gs.Status.Effects) != 0 {
		t.Errorf("overrides ignored: %s", gs.Status)
	}

	bad := plainStart(0, 0, 0, 20)
	bad.Effects = map[EffectKind]int{EffectTrauma: -1}
	if _, err := e.Initialize("Alice", bad); err == nil {
		t.Error("negative override level accepted")
	}
}

func TestInitializeRequiresName(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 1)
	if _, err := e.Initialize("", nil); !errors.Is(err, ErrNoName) {
		t.Fatalf("err = %v, want ErrNoName", err)
	}
}

// Scenario: A adds ability to wealth then grows, B costs 80. Applied in
// order they give {20, 5, 5, 20}; aging makes it 23.
func TestTurnScenarioSequentialResolution(t *testing.T) {
	a := beneficialCard("a", 1, Derived{From: func(s Status) Delta {
		return Delta{Wealth: s.Ability, Ability: 5, Goodness: 5}
	}})
	b := harmfulCard("b", 1, Delta{Wealth: -80})
	e, logger := scriptedEngine(t, 4, a, b)
	mustInit(t, e, plainStart(100, 0, 0, 20))

	hand := mustDraw(t, e)
	res := mustSelect(t, e, hand.Beneficial[0])

	if len(res.Applied) != 2 {
		t.Fatalf("applied %d cards, want 2", len(res.Applied))
	}
	mid := res.Applied[1].Outcome.Status
	if want := (Status{Wealth: 20, Goodness: 5, Ability: 5, Age: 20}); !mid.Equal(want) {
		t.Errorf("before ticks: got %s, want %s", mid, want)
	}
	if want := (Status{Wealth: 20, Goodness: 5, Ability: 5, Age: 23}); !res.Status.Equal(want) {
		t.Errorf("after ticks: got %s, want %s", res.Status, want)
	}

	gs := e.State()
	if gs.Turn != 2 || len(gs.History) != 1 {
		t.Fatalf("turn %d, history %d", gs.Turn, len(gs.History))
	}
	rec := gs.History[0]
	if rec.Turn != 1 || rec.Before.Wealth != 100 || rec.After.Age != 23 {
		t.Errorf("history record: %+v", rec)
	}
	if len(rec.Beneficial) != 1 || rec.Beneficial[0] != "a" || len(rec.Harmful) != 1 || rec.Harmful[0] != "b" {
		t.Errorf("history cards: %v / %v", rec.Beneficial, rec.Harmful)
	}
	if !rec.Timestamp.Equal(testEpoch) {
		t.Errorf("timestamp = %v", rec.Timestamp)
	}
	if len(logger.EventsOfType(log.EventAging)) != 1 {
		dumpLog(t, logger)
		t.Error("expected one aging event")
	}
}

func TestResolutionOrderBeneficialThenHarmful(t *testing.T) {
	b1 := beneficialCard("b1", 1, Delta{Wealth: 100})
	b2 := beneficialCard("b2", 1, Scale{Wealth: 2})
	h1 := harmfulCard("h1", 1, Delta{Wealth: -50})
	h2 := harmfulCard("h2", 1, Scale{Wealth: 0.5})
	e, _ := scriptedEngine(t, 4, b1, b2, h1, h2)
	mustInit(t, e, plainStart(100, 0, 0, 20))

	hand := mustDraw(t, e)
	if got := IDs(hand.Harmful); len(got) != 2 || got[0] != "h1" {
		t.Fatalf("harmful hand %v", got)
	}
	// Player order: b2 before b1.
	res := mustSelect(t, e, hand.Beneficial[1], hand.Beneficial[0])

	// 100 ×2 = 200, +100 = 300, -50 = 250, ×0.5 = 125
	if res.Status.Wealth != 125 {
		t.Errorf("wealth = %g, want 125", res.Status.Wealth)
	}
	var order []string
	for _, a := range res.Applied {
		order = append(order, a.Card.ID)
	}
	want := []string{"b2", "b1", "h1", "h2"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v, want %v", order, want)
		}
	}
	if len(res.Harmful) != 2 {
		t.Errorf("auto-selected %d harmful cards, want 2", len(res.Harmful))
	}
}

func TestEarlyStopOnTerminal(t *testing.T) {
	b1 := beneficialCard("b1", 1, Delta{Wealth: 100})
	b2 := beneficialCard("b2", 1, Terminal{Reason: ReasonAlienAbduction})
	h1 := harmfulCard("h1", 1, Delta{Wealth: -50})
	h2 := harmfulCard("h2", 1, Scale{Wealth: 0.5})
	e, logger := scriptedEngine(t, 4, b1, b2, h1, h2)
	mustInit(t, e, plainStart(100, 0, 0, 20))

	hand := mustDraw(t, e)
	res := mustSelect(t, e, hand.Beneficial...)

	if !res.GameOver || res.Reason != ReasonAlienAbduction {
		t.Fatalf("got %+v", res)
	}
	if len(res.Applied) != 2 {
		t.Errorf("applied %d cards, want 2", len(res.Applied))
	}
	if !res.Status.Equal(res.Applied[1].Outcome.Status) || res.Status.Wealth != 200 {
		t.Errorf("final status %s should be the terminal snapshot", res.Status)
	}
	if res.Status.Age != 20 || len(res.Ticks) != 0 {
		t.Error("ticks must not run after a terminal card")
	}

	gs := e.State()
	if !gs.Over || gs.Reason != ReasonAlienAbduction || e.Phase() != PhaseTerminated {
		t.Errorf("state not terminated: %+v", gs)
	}
	if !gs.History[0].GameOver {
		t.Error("history should record the terminal turn")
	}
	if _, err := e.DrawCards(); !errors.Is(err, ErrGameOver) {
		t.Errorf("DrawCards after death: %v", err)
	}
	if len(logger.EventsOfType(log.EventGameOver)) != 1 {
		t.Error("expected one game over event")
	}
}

func TestProtectionAcrossTurns(t *testing.T) {
	rest := beneficialCard("rest", 1, Narrative{Text: "rest"})
	hit := harmfulCard("hit", 1, Guarded{
		Protection: EffectSecurity,
		Mild:       Delta{Wealth: -10},
		Severe:     Terminal{Reason: ReasonAssassination},
	})
	e, logger := scriptedEngine(t, 4, rest, hit)
	start := plainStart(100, 0, 0, 20)
	start.Effects = map[EffectKind]int{EffectSecurity: 2}
	mustInit(t, e, start)

	mustDraw(t, e)
	first := mustSelect(t, e, rest)
	if first.GameOver || first.Status.Level(EffectSecurity) != 1 || first.Status.Wealth != 90 {
		t.Fatalf("first encounter: %+v", first.Status)
	}

	mustDraw(t, e)
	second := mustSelect(t, e, rest)
	if second.GameOver || second.Status.Wealth != 80 {
		t.Fatalf("second encounter: %+v", second)
	}
	if _, present := second.Status.Effects[EffectSecurity]; present {
		t.Fatalf("security should be removed, got %v", second.Status.Effects)
	}

	mustDraw(t, e)
	third := mustSelect(t, e, rest)
	if !third.GameOver || third.Reason != ReasonAssassination {
		t.Fatalf("unprotected encounter: %+v", third)
	}
	if n := len(logger.EventsOfType(log.EventProtected)); n != 2 {
		t.Errorf("protected events = %d, want 2", n)
	}
}

func TestSelectCardsStrict(t *testing.T) {
	b1 := beneficialCard("b1", 1, Delta{Wealth: 1})
	b2 := beneficialCard("b2", 1, Delta{Wealth: 2})
	h1 := harmfulCard("h1", 1, Delta{Wealth: -1})
	h2 := harmfulCard("h2", 1, Delta{Wealth: -2})
	e, _ := scriptedEngine(t, 1, b1, b2, h1, h2)

	if _, err := e.DrawCards(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("draw before init: %v", err)
	}
	if _, err := e.SelectCards([]*Card{b1}, nil); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("select before init: %v", err)
	}

	mustInit(t, e, plainStart(100, 0, 0, 20))
	if _, err := e.SelectCards([]*Card{b1}, nil); !errors.Is(err, ErrNoHand) {
		t.Errorf("select before draw: %v", err)
	}

	hand := mustDraw(t, e) // hand size 1: [b1] / [h1]
	if hand.Beneficial[0].ID != "b1" || hand.Harmful[0].ID != "h1" {
		t.Fatalf("hand %v / %v", IDs(hand.Beneficial), IDs(hand.Harmful))
	}

	tests := []struct {
		name    string
		ben     []*Card
		harmful []*Card
		want    error
	}{
		{"empty", nil, nil, ErrNoCardsSelected},
		{"not in hand", []*Card{b2}, nil, ErrCardNotInHand},
		{"wrong category", []*Card{h1}, nil, ErrWrongCategory},
		{"duplicate", []*Card{b1, b1}, nil, ErrDuplicateCard},
		{"foreign harmful", []*Card{b1}, []*Card{h2}, ErrCardNotInHand},
		{"beneficial as harmful", []*Card{b1}, []*Card{b1}, ErrWrongCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.SelectCards(tt.ben, tt.harmful); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	gs := e.State()
	if gs.Turn != 1 || len(gs.History) != 0 || gs.Status.Wealth != 100 {
		t.Fatalf("rejected commits changed state: %+v", gs)
	}
	if _, ok := e.Hand(); !ok {
		t.Fatal("rejected commit discarded the hand")
	}
	res := mustSelect(t, e, b1)
	if res.Status.Wealth != 100 {
		t.Errorf("wealth = %g, want 100", res.Status.Wealth)
	}
	if _, ok := e.Hand(); ok {
		t.Error("hand should be cleared after commit")
	}
}

func TestTicksRunOncePerTurn(t *testing.T) {
	rest := beneficialCard("rest", 1, Narrative{})
	calm := harmfulCard("calm", 1, Narrative{})
	e, logger := scriptedEngine(t, 4, rest, calm)
	mustInit(t, e, plainStart(100, 0, 0, 20))

	if _, err := e.tick(e.state.Status); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if _, err := e.tick(e.state.Status); !errors.Is(err, ErrAlreadyTicked) {
		t.Fatalf("second tick: %v, want ErrAlreadyTicked", err)
	}

	mustDraw(t, e)
	before := len(logger.Events())
	if _, err := e.SelectCards([]*Card{rest}, nil); !errors.Is(err, ErrAlreadyTicked) {
		t.Fatalf("commit after manual tick: %v", err)
	}
	if n := len(logger.Events()); n != before {
		t.Errorf("rejected commit logged %d events", n-before)
	}
	if _, ok := e.Hand(); !ok {
		t.Error("rejected commit discarded the hand")
	}
	if e.Phase() != PhaseAwaitingSelection || e.State().Turn != 1 {
		t.Fatalf("failed commit left phase %s turn %d", e.Phase(), e.State().Turn)
	}
}

func TestCheckAgeGameOver(t *testing.T) {
	rest := beneficialCard("rest", 1, Narrative{})
	calm := harmfulCard("calm", 1, Narrative{})
	e, _ := scriptedEngine(t, 4, rest, calm)

	if e.CheckAgeGameOver() {
		t.Error("uninitialized engine reported game over")
	}

	mustInit(t, e, plainStart(0, 0, 0, 157))
	if e.CheckAgeGameOver() {
		t.Fatal("age 157 is not over")
	}
	mustDraw(t, e)
	res := mustSelect(t, e, rest)
	if res.GameOver {
		t.Fatal("aging alone does not end the turn")
	}
	if !e.CheckAgeGameOver() {
		t.Fatalf("age %d should be over", res.Status.Age)
	}
	gs := e.State()
	if gs.Reason != ReasonOldAge || !gs.Over {
		t.Errorf("got %+v", gs)
	}
	last := gs.History[len(gs.History)-1]
	if !last.GameOver || last.Reason != ReasonOldAge {
		t.Errorf("last turn record: over=%v reason=%s", last.GameOver, last.Reason)
	}

	mustInit(t, e, plainStart(0, 0, 0, 160))
	if !e.CheckAgeGameOver() {
		t.Error("exactly 160 should be over")
	}
}

func TestEndLifeIdempotent(t *testing.T) {
	e, logger := newTestEngine(t, DefaultCatalog(), 3)

	if gs := e.EndLife(); gs.Over {
		t.Fatal("EndLife before Initialize ended something")
	}

	mustInit(t, e, nil)
	gs := e.EndLife()
	if !gs.Over || gs.Reason != ReasonSuicide {
		t.Fatalf("got %+v", gs)
	}
	again := e.EndLife()
	if again.Reason != ReasonSuicide || again.Turn != gs.Turn {
		t.Errorf("second EndLife changed state: %+v", again)
	}
	if n := len(logger.EventsOfType(log.EventEndLife)); n != 1 {
		t.Errorf("end life events = %d, want 1", n)
	}
	if _, err := e.SelectCards(nil, nil); !errors.Is(err, ErrGameOver) {
		t.Errorf("select after end: %v", err)
	}
}

func TestResetThenInitializeIsClean(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 8)
	start := plainStart(500, 10, 50, 20)
	start.Effects = map[EffectKind]int{EffectCompound: 3, EffectAddiction: 2, EffectSecurity: 1}
	mustInit(t, e, start)
	for i := 0; i < 3 && !e.State().Over; i++ {
		hand := mustDraw(t, e)
		mustSelect(t, e, hand.Beneficial[0])
	}

	e.Reset(true)
	if e.Phase() != PhaseUninitialized {
		t.Fatalf("phase = %s", e.Phase())
	}
	kept := e.State()
	if kept.PlayerName != "Alice" || kept.Turn != 0 || len(kept.History) != 0 {
		t.Fatalf("after reset: %+v", kept)
	}

	gs, err := e.Initialize("", plainStart(0, 0, 0, 20))
	if err != nil {
		t.Fatalf("Initialize with kept name: %v", err)
	}
	if gs.PlayerName != "Alice" || gs.Turn != 1 || len(gs.History) != 0 || len(gs.Status.Effects) != 0 {
		t.Errorf("not clean: %+v", gs)
	}

	e.Reset(false)
	if _, err := e.Initialize("", nil); !errors.Is(err, ErrNoName) {
		t.Errorf("name survived Reset(false): %v", err)
	}
}

func TestStateIsACopy(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 4)
	start := plainStart(100, 0, 0, 20)
	start.Effects = map[EffectKind]int{EffectTrauma: 2}
	mustInit(t, e, start)
	hand := mustDraw(t, e)
	mustSelect(t, e, hand.Beneficial[0])

	gs := e.State()
	gs.Status.Effects[EffectTrauma] = 99
	gs.History[0].Before.Wealth = -1
	gs.History = append(gs.History, TurnRecord{})

	fresh := e.State()
	if fresh.Status.Level(EffectTrauma) == 99 || fresh.History[0].Before.Wealth == -1 || len(fresh.History) != 1 {
		t.Error("State leaked internal storage")
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	e, _ := newTestEngine(t, DefaultCatalog(), 12)
	mustInit(t, e, plainStart(1000, 20, 50, 20))

	var snapshots []TurnRecord
	for i := 0; i < 4 && !e.State().Over; i++ {
		hand := mustDraw(t, e)
		mustSelect(t, e, hand.Beneficial[0])
		h := e.State().History
		snapshots = append(snapshots, h[len(h)-1])
	}
	final := e.State().History
	for i, rec := range snapshots {
		if !final[i].After.Equal(rec.After) || final[i].Turn != i+1 {
			t.Errorf("history[%d] changed after later turns", i)
		}
	}
}

func TestStatusInvariantsOverManyLives(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	e, err := NewEngine(EngineConfig{RNG: rng, Clock: fixedClock})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for life := 0; life < 50; life++ {
		if _, err := e.Initialize("Sim", nil); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
		for turn := 0; turn < 80 && !e.State().Over; turn++ {
			hand := mustDraw(t, e)
			n := 1 + rng.Intn(len(hand.Beneficial))
			res := mustSelect(t, e, hand.Beneficial[:n]...)
			for _, a := range res.Applied {
				if err := a.Outcome.Status.Validate(); err != nil {
					t.Fatalf("after %s: %v", a.Card.ID, err)
				}
			}
			if err := res.Status.Validate(); err != nil {
				t.Fatalf("turn %d: %v", res.Turn, err)
			}
			if res.GameOver && res.Reason == ReasonNone {
				t.Fatal("terminal turn without reason")
			}
			e.CheckAgeGameOver()
		}
	}
}

func TestTuningRateOverrides(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Rates = map[string]float64{"labor": 0}
	e, err := NewEngine(EngineConfig{Tuning: &tuning, Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	labor, _ := e.Catalog().Lookup("labor")
	if labor.BaseRate != 0 {
		t.Errorf("labor rate = %g, want 0", labor.BaseRate)
	}
	if LookupCard("labor").BaseRate == 0 {
		t.Error("override leaked into the registry")
	}

	tuning.Rates = map[string]float64{"no_such_card": 1}
	if _, err := NewEngine(EngineConfig{Tuning: &tuning, Seed: 1}); err == nil {
		t.Error("unknown card id accepted")
	}
}
