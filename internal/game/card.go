package game

import (
	"fmt"
	"math"
)

// Range is an optional inclusive bound pair. Nil pointers are open.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Gates are hard appearance limits checked before any rate modifier.
type Gates struct {
	Wealth   Range
	Goodness Range
	Ability  Range
	Age      Range
}

// Allows reports whether every gate admits the snapshot.
func (g Gates) Allows(s Status) bool {
	return g.Wealth.contains(s.Wealth) &&
		g.Goodness.contains(s.Goodness) &&
		g.Ability.contains(s.Ability) &&
		g.Age.contains(float64(s.Age))
}

// AtLeast is shorthand for a lower-bounded Range.
func AtLeast(v float64) Range {
	return Range{Min: &v}
}

// AtMost is shorthand for an upper-bounded Range.
func AtMost(v float64) Range {
	return Range{Max: &v}
}

// Between is shorthand for a closed Range.
func Between(lo, hi float64) Range {
	return Range{Min: &lo, Max: &hi}
}

// --- Card definition (static catalog entry) ---

type Card struct {
	ID           string
	Name         string
	Category     Category
	Description  string
	BaseRate     float64
	Gates        Gates
	RateModifier RateModifier // nil means ×1
	Effect       Effect
}

func (c *Card) String() string {
	return c.ID
}

// Validate checks the static invariants of a catalog entry.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card has no id")
	}
	if c.Effect == nil {
		return fmt.Errorf("card %q has no effect", c.ID)
	}
	if c.BaseRate < 0 || math.IsNaN(c.BaseRate) {
		return fmt.Errorf("card %q has invalid base rate %g", c.ID, c.BaseRate)
	}
	return nil
}

// Weight is the card's draw weight for a snapshot: 0 when a gate fails,
// otherwise BaseRate × RateModifier, floored at 0.
func Weight(c *Card, s Status) float64 {
	if !c.Gates.Allows(s) {
		return 0
	}
	w := c.BaseRate
	if c.RateModifier != nil {
		w *= c.RateModifier.Multiplier(s)
	}
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	if math.IsInf(w, 1) {
		return math.MaxFloat64
	}
	return w
}

// IDs returns the ids of cards in order.
func IDs(cards []*Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
