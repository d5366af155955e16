package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Outcome is the result of applying one effect to a status snapshot.
// A terminal outcome has GameOver set and a non-empty Reason.
type Outcome struct {
	Status      Status
	Description string
	GameOver    bool
	Reason      GameOverReason

	// Set when a Guarded effect consumed a protection level.
	Protected EffectKind
	// Set when a conditional Terminal did not fire.
	NearMiss bool
}

// Effect is a card effect description. Apply receives a private copy of
// the snapshot and must return exactly one outcome for any valid input.
type Effect interface {
	Apply(s Status) Outcome
}

func settled(s Status, description string) Outcome {
	return Outcome{Status: s, Description: description}
}

// --- Delta: fixed additions ---

// Delta adds fixed amounts to attributes and status levels.
type Delta struct {
	Wealth   float64
	Goodness float64
	Ability  float64
	Age      int
	Levels   map[EffectKind]int
	Text     string // overrides the generated description
}

func (d Delta) Apply(s Status) Outcome {
	s.Wealth += d.Wealth
	s.Goodness += d.Goodness
	s.Ability += d.Ability
	s.Age += d.Age
	for _, k := range sortedKinds(d.Levels) {
		s.AddLevel(k, d.Levels[k])
	}
	if d.Text != "" {
		return settled(s, d.Text)
	}
	return settled(s, d.describe())
}

func (d Delta) describe() string {
	var parts []string
	if d.Wealth != 0 {
		parts = append(parts, fmt.Sprintf("wealth %s", signed(d.Wealth)))
	}
	if d.Goodness != 0 {
		parts = append(parts, fmt.Sprintf("goodness %s", signed(d.Goodness)))
	}
	if d.Ability != 0 {
		parts = append(parts, fmt.Sprintf("ability %s", signed(d.Ability)))
	}
	if d.Age != 0 {
		parts = append(parts, fmt.Sprintf("age %s", signed(float64(d.Age))))
	}
	for _, k := range sortedKinds(d.Levels) {
		parts = append(parts, fmt.Sprintf("%s %s", k.Title(), signed(float64(d.Levels[k]))))
	}
	if len(parts) == 0 {
		return "nothing happens"
	}
	return strings.Join(parts, ", ")
}

// --- Scale: multiplicative wealth ---

// Scale multiplies wealth by a fixed factor.
type Scale struct {
	Wealth float64
	Text   string
}

func (m Scale) Apply(s Status) Outcome {
	old := s.Wealth
	s.Wealth *= m.Wealth
	if m.Text != "" {
		return settled(s, m.Text)
	}
	return settled(s, fmt.Sprintf("wealth ×%g (%.0f → %.0f)", m.Wealth, math.Floor(old), math.Floor(s.Wealth)))
}

// --- Derived: deltas computed from the current snapshot ---

// Derived computes a delta from the snapshot it is applied to.
type Derived struct {
	From func(s Status) Delta
}

func (d Derived) Apply(s Status) Outcome {
	return d.From(s).Apply(s)
}

// --- Tiered: branch on a value at resolution time ---

// Selector reads the value a Tiered effect branches on.
type Selector struct {
	Attr  Attribute
	Level EffectKind // when non-zero, reads this status level instead of Attr
}

func (sel Selector) Read(s Status) float64 {
	if sel.Level != 0 {
		return float64(s.Level(sel.Level))
	}
	return s.Get(sel.Attr)
}

func (sel Selector) String() string {
	if sel.Level != 0 {
		return sel.Level.String()
	}
	return sel.Attr.String()
}

// Tier applies Effect when the selected value is strictly below Below.
type Tier struct {
	Below  float64
	Effect Effect
}

// Tiered picks the first tier whose bound exceeds the current value, or
// Else when none do. Tiers must be ordered by ascending bound.
type Tiered struct {
	On    Selector
	Tiers []Tier
	Else  Effect
}

func (t Tiered) Apply(s Status) Outcome {
	v := t.On.Read(s)
	for _, tier := range t.Tiers {
		if v < tier.Below {
			return tier.Effect.Apply(s)
		}
	}
	if t.Else == nil {
		return settled(s, "nothing happens")
	}
	return t.Else.Apply(s)
}

// --- Mastery: start or deepen a status level ---

// Mastery starts Kind at level 1 with the Start bonus on first use. Later
// uses pay level × PerLevelWealth and then increment the level.
type Mastery struct {
	Kind           EffectKind
	Start          Delta
	PerLevelWealth float64
}

func (m Mastery) Apply(s Status) Outcome {
	level := s.Level(m.Kind)
	if level == 0 {
		out := m.Start.Apply(s)
		out.Status.SetLevel(m.Kind, 1)
		return settled(out.Status, fmt.Sprintf("%s begins (level 1), %s", m.Kind.Title(), out.Description))
	}
	bonus := float64(level) * m.PerLevelWealth
	s.Wealth += bonus
	s.SetLevel(m.Kind, level+1)
	return settled(s, fmt.Sprintf("%s %d → %d, bonus wealth %s", m.Kind.Title(), level, level+1, signed(bonus)))
}

// --- Afford: affordability precondition ---

// Afford charges Cost wealth and then applies Then. When the player cannot
// pay, the snapshot is returned unchanged with an explanation.
type Afford struct {
	Cost    float64
	Then    Effect
	Refusal string
}

func (a Afford) Apply(s Status) Outcome {
	if s.Wealth < a.Cost {
		msg := a.Refusal
		if msg == "" {
			msg = fmt.Sprintf("cannot afford %.0f", a.Cost)
		}
		return settled(s, msg)
	}
	s.Wealth -= a.Cost
	out := a.Then.Apply(s)
	if !out.GameOver {
		out.Description = fmt.Sprintf("paid %.0f, %s", a.Cost, out.Description)
	}
	return out
}

// --- Terminal: game over, possibly conditional ---

// Condition is a predicate over a snapshot.
type Condition func(s Status) bool

// Terminal ends the game with Reason. When If is set and false for the
// current snapshot, the card is a near miss: NearMiss is applied instead
// (or nothing, if it is nil).
type Terminal struct {
	Reason   GameOverReason
	If       Condition
	NearMiss Effect
	Text     string
}

func (t Terminal) Apply(s Status) Outcome {
	if t.If != nil && !t.If(s) {
		out := Outcome{Status: s, Description: "a narrow escape"}
		if t.NearMiss != nil {
			out = t.NearMiss.Apply(s)
		}
		out.NearMiss = true
		return out
	}
	text := t.Text
	if text == "" {
		text = "game over: " + t.Reason.Epitaph()
	}
	return Outcome{Status: s, Description: text, GameOver: true, Reason: t.Reason}
}

// --- Guarded: mitigation through a protection status ---

// Guarded consumes one level of Protection, if present, and applies Mild
// instead of Severe.
type Guarded struct {
	Protection EffectKind
	Mild       Effect
	Severe     Effect
}

func (g Guarded) Apply(s Status) Outcome {
	if !s.Has(g.Protection) {
		return g.Severe.Apply(s)
	}
	s.AddLevel(g.Protection, -1)
	out := g.Mild.Apply(s)
	out.Protected = g.Protection
	out.Description = fmt.Sprintf("%s intervened: %s", g.Protection.Title(), out.Description)
	return out
}

// --- Seq: composition ---

// Seq applies effects in order, stopping at the first terminal outcome.
type Seq []Effect

func (q Seq) Apply(s Status) Outcome {
	out := settled(s, "")
	var parts []string
	for _, e := range q {
		out = e.Apply(out.Status)
		if out.Description != "" {
			parts = append(parts, out.Description)
		}
		if out.GameOver {
			break
		}
	}
	out.Description = strings.Join(parts, "; ")
	return out
}

// --- Narrative: flavour only ---

// Narrative changes nothing.
type Narrative struct {
	Text string
}

func (n Narrative) Apply(s Status) Outcome {
	return settled(s, n.Text)
}

// --- EffectFunc: registered pure function ---

// EffectFunc adapts a pure function to Effect.
type EffectFunc func(s Status) Outcome

func (f EffectFunc) Apply(s Status) Outcome {
	return f(s)
}

// --- helpers ---

func signed(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%g", v)
	}
	return fmt.Sprintf("%g", v)
}

func sortedKinds(m map[EffectKind]int) []EffectKind {
	keys := make([]EffectKind, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
