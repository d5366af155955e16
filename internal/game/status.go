package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	WealthCap   = 1e15 - 1
	WealthFloor = -(1e15 - 1)
)

// Status is one snapshot of a player's attributes and active status
// effects. Treat it as a value: mutate only the result of Clone.
type Status struct {
	Wealth   float64
	Goodness float64
	Ability  float64
	Age      int
	Effects  map[EffectKind]int
}

// Clone returns a deep copy of the snapshot.
func (s Status) Clone() Status {
	c := s
	c.Effects = nil
	if len(s.Effects) > 0 {
		c.Effects = make(map[EffectKind]int, len(s.Effects))
		for k, v := range s.Effects {
			c.Effects[k] = v
		}
	}
	return c
}

// Level returns the current level of an effect, 0 if inactive.
func (s Status) Level(k EffectKind) int {
	return s.Effects[k]
}

// Has reports whether the effect is active.
func (s Status) Has(k EffectKind) bool {
	return s.Effects[k] >= 1
}

// SetLevel stores a level. Levels <= 0 remove the effect.
func (s *Status) SetLevel(k EffectKind, level int) {
	if level <= 0 {
		delete(s.Effects, k)
		return
	}
	if s.Effects == nil {
		s.Effects = make(map[EffectKind]int)
	}
	s.Effects[k] = level
}

// AddLevel adjusts a level by delta, removing the effect at <= 0.
func (s *Status) AddLevel(k EffectKind, delta int) {
	s.SetLevel(k, s.Level(k)+delta)
}

// Get reads a numeric attribute.
func (s Status) Get(a Attribute) float64 {
	switch a {
	case AttrWealth:
		return s.Wealth
	case AttrGoodness:
		return s.Goodness
	case AttrAbility:
		return s.Ability
	case AttrAge:
		return float64(s.Age)
	default:
		return 0
	}
}

// ClampWealth saturates wealth to [WealthFloor, WealthCap].
func ClampWealth(w float64) float64 {
	if math.IsNaN(w) {
		return 0
	}
	if w > WealthCap {
		return WealthCap
	}
	if w < WealthFloor {
		return WealthFloor
	}
	return w
}

// Clamped returns a copy with wealth saturated.
func (s Status) Clamped() Status {
	c := s.Clone()
	c.Wealth = ClampWealth(c.Wealth)
	return c
}

// Validate reports snapshots that break the model's invariants.
func (s Status) Validate() error {
	for _, v := range []float64{s.Wealth, s.Goodness, s.Ability} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("status has non-finite attribute")
		}
	}
	if s.Wealth > WealthCap || s.Wealth < WealthFloor {
		return fmt.Errorf("wealth %g outside [%g, %g]", s.Wealth, WealthFloor, WealthCap)
	}
	for k, v := range s.Effects {
		if v <= 0 {
			return fmt.Errorf("status effect %s stored at level %d", k, v)
		}
	}
	return nil
}

// ActiveEffects returns the active effect kinds in tick order.
func (s Status) ActiveEffects() []EffectKind {
	var out []EffectKind
	for _, k := range AllEffectKinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// EffectLevels returns the active effects keyed by canonical name.
func (s Status) EffectLevels() map[string]int {
	out := make(map[string]int, len(s.Effects))
	for k, v := range s.Effects {
		if v >= 1 {
			out[k.String()] = v
		}
	}
	return out
}

func (s Status) String() string {
	var effects []string
	for k, v := range s.Effects {
		effects = append(effects, fmt.Sprintf("%s=%d", k, v))
	}
	sort.Strings(effects)
	out := fmt.Sprintf("wealth=%.0f goodness=%.0f ability=%.0f age=%d",
		math.Floor(s.Wealth), math.Floor(s.Goodness), math.Floor(s.Ability), s.Age)
	if len(effects) > 0 {
		out += " [" + strings.Join(effects, " ") + "]"
	}
	return out
}

// Equal compares two snapshots field by field, including effect levels.
func (s Status) Equal(o Status) bool {
	if s.Wealth != o.Wealth || s.Goodness != o.Goodness || s.Ability != o.Ability || s.Age != o.Age {
		return false
	}
	if len(s.Effects) != len(o.Effects) {
		return false
	}
	for k, v := range s.Effects {
		if o.Effects[k] != v {
			return false
		}
	}
	return true
}
