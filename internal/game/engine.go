package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/lifecards/internal/log"
	"github.com/peterkuimelis/lifecards/internal/random"
)

// Hand is one turn's draw: the beneficial cards offered to the player and
// the harmful cards fate will sample from.
type Hand struct {
	Beneficial []*Card
	Harmful    []*Card
}

func (h Hand) clone() Hand {
	return Hand{
		Beneficial: append([]*Card(nil), h.Beneficial...),
		Harmful:    append([]*Card(nil), h.Harmful...),
	}
}

// Pick resolves 0-based indices into the beneficial side of the hand,
// preserving the given order.
func (h Hand) Pick(indices []int) ([]*Card, error) {
	seen := make(map[int]bool, len(indices))
	out := make([]*Card, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(h.Beneficial) {
			return nil, fmt.Errorf("index %d (hand has %d): %w", i, len(h.Beneficial), ErrCardNotInHand)
		}
		if seen[i] {
			return nil, fmt.Errorf("index %d: %w", i, ErrDuplicateCard)
		}
		seen[i] = true
		out = append(out, h.Beneficial[i])
	}
	return out, nil
}

// StatusOverrides replaces rolled starting values. Nil fields keep the
// roll. A non-nil Effects map replaces the rolled starting effects.
type StatusOverrides struct {
	Wealth   *float64
	Goodness *float64
	Ability  *float64
	Age      *int
	Effects  map[EffectKind]int
}

// TurnResult describes one committed turn.
type TurnResult struct {
	Turn         int
	Beneficial   []*Card
	Harmful      []*Card
	Applied      []Applied
	Ticks        []TickLine
	Descriptions []string
	Before       Status
	Status       Status
	GameOver     bool
	Reason       GameOverReason
}

// EngineConfig holds configuration for creating an engine.
type EngineConfig struct {
	Catalog *Catalog // nil means DefaultCatalog
	Tuning  *Tuning  // nil means DefaultTuning
	RNG     RNG      // nil means a PRNG seeded from Seed
	Seed    int64    // RNG seed when RNG is nil (0 for random)
	Logger  log.EventLogger
	Clock   func() time.Time
}

// Engine is the turn lifecycle controller. It owns one GameState and
// moves it through Uninitialized → AwaitingSelection → Resolving →
// AwaitingSelection … → Terminated.
//
// Engine is not safe for concurrent use. Concurrent calls against the same
// engine are undefined behaviour; callers serialize them.
type Engine struct {
	catalog *Catalog
	tuning  Tuning
	rng     RNG
	logger  log.EventLogger
	now     func() time.Time

	state      GameState
	phase      Phase
	hand       *Hand
	keptName   string
	tickedTurn int
}

// NewEngine creates an engine in the Uninitialized phase.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{
		catalog: cfg.Catalog,
		rng:     cfg.RNG,
		logger:  cfg.Logger,
		now:     cfg.Clock,
		phase:   PhaseUninitialized,
	}
	if e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	e.tuning = DefaultTuning()
	if cfg.Tuning != nil {
		e.tuning = *cfg.Tuning
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	if len(e.tuning.Rates) > 0 {
		c, err := e.catalog.WithRates(e.tuning.Rates)
		if err != nil {
			return nil, fmt.Errorf("invalid tuning: %w", err)
		}
		e.catalog = c
	}
	if e.rng == nil {
		r, _, err := random.New(cfg.Seed)
		if err != nil {
			return nil, err
		}
		e.rng = r
	}
	if e.logger == nil {
		e.logger = log.NewMemoryLogger()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Catalog returns the engine's card catalog, with tuning rates applied.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Tuning returns the engine's rule constants.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Logger returns the event logger.
func (e *Engine) Logger() log.EventLogger { return e.logger }

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// State returns a deep copy of the current game state.
func (e *Engine) State() GameState { return e.state.Clone() }

// Hand returns the hand drawn this turn, if any.
func (e *Engine) Hand() (Hand, bool) {
	if e.hand == nil {
		return Hand{}, false
	}
	return e.hand.clone(), true
}

// Initialize starts a new life, discarding any previous one. An empty name
// falls back to the name kept by Reset.
func (e *Engine) Initialize(name string, overrides *StatusOverrides) (GameState, error) {
	if name == "" {
		name = e.keptName
	}
	if name == "" {
		return GameState{}, ErrNoName
	}

	t := e.tuning
	s := Status{
		Wealth:   float64(e.rollInt(t.StartWealth)),
		Goodness: float64(e.rollInt(t.StartGoodness)),
		Ability:  float64(e.rollInt(t.StartAbility)),
		Age:      e.rollInt(t.StartAge),
	}
	for _, se := range t.StartingEffects {
		if e.rng.Float64() < se.Chance {
			s.SetLevel(se.Kind, e.rollInt(se.Levels))
		}
	}
	if overrides != nil {
		if err := applyOverrides(&s, overrides); err != nil {
			return GameState{}, err
		}
	}
	s.Wealth = ClampWealth(s.Wealth)
	if err := s.Validate(); err != nil {
		return GameState{}, fmt.Errorf("initial status: %w", err)
	}

	e.state = GameState{
		PlayerID:   uuid.NewString(),
		PlayerName: name,
		Status:     s,
		Turn:       1,
		StartedAt:  e.now(),
	}
	e.keptName = name
	e.phase = PhaseAwaitingSelection
	e.hand = nil
	e.tickedTurn = 0

	e.logger.Log(log.NewLifeEvent(name, s.String()))
	return e.State(), nil
}

func applyOverrides(s *Status, o *StatusOverrides) error {
	if o.Wealth != nil {
		s.Wealth = *o.Wealth
	}
	if o.Goodness != nil {
		s.Goodness = *o.Goodness
	}
	if o.Ability != nil {
		s.Ability = *o.Ability
	}
	if o.Age != nil {
		s.Age = *o.Age
	}
	if o.Effects != nil {
		s.Effects = nil
		for k, v := range o.Effects {
			if v < 0 {
				return fmt.Errorf("override for %s has negative level %d", k, v)
			}
			s.SetLevel(k, v)
		}
	}
	return nil
}

// rollInt returns a uniform integer in [r.Min, r.Max].
func (e *Engine) rollInt(r IntRange) int {
	return r.Min + e.rng.Intn(r.Max-r.Min+1)
}

func (e *Engine) checkPlayable() error {
	switch e.phase {
	case PhaseUninitialized:
		return ErrNotInitialized
	case PhaseTerminated:
		return ErrGameOver
	case PhaseResolving:
		return ErrTurnInProgress
	}
	return nil
}

// DrawCards draws a beneficial and a harmful hand against the live status.
// GameState is not modified; the hand is remembered for SelectCards.
// Drawing again in the same turn replaces the hand.
func (e *Engine) DrawCards() (Hand, error) {
	if err := e.checkPlayable(); err != nil {
		return Hand{}, err
	}
	s := e.state.Status
	n := e.tuning.HandSize
	h := Hand{
		Beneficial: DrawWeighted(e.catalog.Beneficial(), n, s, e.rng),
		Harmful:    DrawWeighted(e.catalog.Harmful(), n, s, e.rng),
	}
	e.hand = &h

	e.logger.Log(log.NewTurnEvent(e.state.Turn, e.state.PlayerName))
	e.logger.Log(log.NewDrawEvent(e.state.Turn, e.state.PlayerName, IDs(h.Beneficial), IDs(h.Harmful)))
	return h.clone(), nil
}

// SelectCards commits the turn. The chosen beneficial cards must come from
// the current hand. harmfulHand is the harmful side to sample from; nil
// means the harmful side of the current hand. As many harmful cards as
// beneficial cards are auto-selected uniformly, then every card resolves
// in order (beneficial in the given order, then harmful in sampled order).
// Status ticks and aging follow unless a card ended the life.
func (e *Engine) SelectCards(beneficial []*Card, harmfulHand []*Card) (TurnResult, error) {
	if err := e.checkPlayable(); err != nil {
		return TurnResult{}, err
	}
	if e.hand == nil {
		return TurnResult{}, ErrNoHand
	}
	if err := e.validateSelection(beneficial, harmfulHand); err != nil {
		return TurnResult{}, err
	}
	if e.tickedTurn == e.state.Turn {
		return TurnResult{}, fmt.Errorf("turn %d: %w", e.state.Turn, ErrAlreadyTicked)
	}
	if harmfulHand == nil {
		harmfulHand = e.hand.Harmful
	}

	e.phase = PhaseResolving
	gs := &e.state
	turn, player := gs.Turn, gs.PlayerName

	harmful := SampleUniform(harmfulHand, len(beneficial), e.rng)
	for _, c := range beneficial {
		e.logger.Log(log.NewSelectEvent(turn, player, c.ID))
	}
	for _, c := range harmful {
		e.logger.Log(log.NewAutoSelectEvent(turn, player, c.ID))
	}

	before := gs.Status.Clone()
	ordered := make([]*Card, 0, len(beneficial)+len(harmful))
	ordered = append(ordered, beneficial...)
	ordered = append(ordered, harmful...)
	seq := ResolveSequence(ordered, before)

	res := TurnResult{
		Turn:       turn,
		Beneficial: append([]*Card(nil), beneficial...),
		Harmful:    harmful,
		Applied:    seq.Applied,
		Before:     before,
		GameOver:   seq.GameOver,
		Reason:     seq.Reason,
	}
	for _, a := range seq.Applied {
		e.logResolution(turn, player, a)
		res.Descriptions = append(res.Descriptions, fmt.Sprintf("%s: %s", a.Card.Name, a.Outcome.Description))
	}

	final := seq.Status
	if !seq.GameOver {
		tr, err := e.tick(final)
		if err != nil {
			e.phase = PhaseAwaitingSelection
			return TurnResult{}, err
		}
		for _, line := range tr.Lines {
			e.logger.Log(log.NewTickEvent(turn, player, line.Kind.String(), line.Details))
			res.Descriptions = append(res.Descriptions, fmt.Sprintf("%s: %s", line.Kind.Title(), line.Details))
		}
		e.logger.Log(log.NewAgingEvent(turn, player, tr.OldAge, tr.NewAge))
		res.Ticks = tr.Lines
		final = tr.Status
	}
	final.Wealth = ClampWealth(final.Wealth)
	res.Status = final.Clone()

	gs.Status = final
	gs.SelectedBeneficial = res.Beneficial
	gs.SelectedHarmful = harmful
	gs.History = append(gs.History, TurnRecord{
		Turn:         turn,
		Before:       before,
		After:        final.Clone(),
		Beneficial:   IDs(res.Beneficial),
		Harmful:      IDs(harmful),
		Descriptions: append([]string(nil), res.Descriptions...),
		GameOver:     seq.GameOver,
		Reason:       seq.Reason,
		Timestamp:    e.now(),
	})
	gs.Turn++
	e.hand = nil

	if seq.GameOver {
		e.terminate(seq.Reason, "Resolve")
	} else {
		e.phase = PhaseAwaitingSelection
	}
	return res, nil
}

func (e *Engine) validateSelection(beneficial, harmfulHand []*Card) error {
	if len(beneficial) == 0 {
		return ErrNoCardsSelected
	}
	inHand := func(pool []*Card, c *Card) bool {
		for _, h := range pool {
			if h.ID == c.ID {
				return true
			}
		}
		return false
	}
	seen := make(map[string]bool, len(beneficial))
	for _, c := range beneficial {
		if c == nil {
			return fmt.Errorf("nil card: %w", ErrCardNotInHand)
		}
		if c.Category != CategoryBeneficial {
			return fmt.Errorf("%s is %s: %w", c.ID, c.Category, ErrWrongCategory)
		}
		if seen[c.ID] {
			return fmt.Errorf("%s: %w", c.ID, ErrDuplicateCard)
		}
		seen[c.ID] = true
		if !inHand(e.hand.Beneficial, c) {
			return fmt.Errorf("%s: %w", c.ID, ErrCardNotInHand)
		}
	}
	for _, c := range harmfulHand {
		if c == nil {
			return fmt.Errorf("nil harmful card: %w", ErrCardNotInHand)
		}
		if c.Category != CategoryHarmful {
			return fmt.Errorf("%s is %s: %w", c.ID, c.Category, ErrWrongCategory)
		}
		if !inHand(e.hand.Harmful, c) {
			return fmt.Errorf("%s: %w", c.ID, ErrCardNotInHand)
		}
	}
	return nil
}

func (e *Engine) logResolution(turn int, player string, a Applied) {
	out := a.Outcome
	if out.Protected != 0 {
		e.logger.Log(log.NewProtectedEvent(turn, player, a.Card.ID, out.Protected.String()))
	}
	if out.NearMiss {
		e.logger.Log(log.NewNearMissEvent(turn, player, a.Card.ID, out.Description))
		return
	}
	e.logger.Log(log.NewResolveEvent(turn, player, a.Card.ID, out.Description))
}

// tick applies status ticks at most once per turn.
func (e *Engine) tick(s Status) (TickResult, error) {
	if e.tickedTurn == e.state.Turn {
		return TickResult{}, fmt.Errorf("turn %d: %w", e.state.Turn, ErrAlreadyTicked)
	}
	e.tickedTurn = e.state.Turn
	return ApplyTicks(s, e.tuning), nil
}

func (e *Engine) terminate(reason GameOverReason, phase string) {
	e.state.Over = true
	e.state.Reason = reason
	e.phase = PhaseTerminated
	e.hand = nil
	e.logger.Log(log.NewGameOverEvent(e.state.Turn, phase, e.state.PlayerName, reason.String()))
}

// CheckAgeGameOver ends the life with old_age once age has reached the
// ceiling, marking the last history entry as the terminal turn. It reports
// whether the life is over after the check.
func (e *Engine) CheckAgeGameOver() bool {
	switch e.phase {
	case PhaseUninitialized:
		return false
	case PhaseTerminated:
		return true
	}
	if e.state.Status.Age >= e.tuning.MaxAge {
		if n := len(e.state.History); n > 0 {
			last := &e.state.History[n-1]
			last.GameOver = true
			last.Reason = ReasonOldAge
		}
		e.terminate(ReasonOldAge, "Age")
		return true
	}
	return false
}

// EndLife ends the life immediately with the suicide reason, bypassing
// card resolution. Calling it on a life that is already over, or before
// Initialize, changes nothing.
func (e *Engine) EndLife() GameState {
	if e.phase == PhaseUninitialized || e.state.Over {
		return e.State()
	}
	e.logger.Log(log.NewEndLifeEvent(e.state.Turn, e.state.PlayerName))
	e.terminate(ReasonSuicide, "End")
	return e.State()
}

// Reset returns the engine to Uninitialized, discarding status, turn count
// and history. With keepName the display name survives for the next
// Initialize.
func (e *Engine) Reset(keepName bool) {
	name := ""
	if keepName {
		name = e.keptName
	}
	e.state = GameState{PlayerName: name}
	e.keptName = name
	e.phase = PhaseUninitialized
	e.hand = nil
	e.tickedTurn = 0
	e.logger.Log(log.NewResetEvent(name))
}
