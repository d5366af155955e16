package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *Card{
	// beneficial
	"labor":                     Labor,
	"pension":                   Pension,
	"investment":                Investment,
	"stocks":                    Stocks,
	"business":                  Business,
	"smart_investment":          SmartInvestment,
	"compound_interest_mastery": CompoundInterestMastery,
	"wealth_doubler":            WealthDoubler,
	"tutoring":                  Tutoring,
	"volunteer":                 Volunteer,
	"study":                     Study,
	"hire_bodyguards":           HireBodyguards,
	"rental_property":           RentalProperty,
	"therapy":                   Therapy,
	"rejuvenation":              Rejuvenation,
	"party_drugs":               PartyDrugs,
	"inheritance":               Inheritance,
	"family_support":            FamilySupport,

	// harmful
	"old_age":                 OldAge,
	"minor_crime":             MinorCrime,
	"traffic_violation":       TrafficViolation,
	"aging":                   Aging,
	"wealth_dependent_crisis": WealthDependentCrisis,
	"state_dependent_disease": StateDependentDisease,
	"wealth_halver":           WealthHalver,
	"assassination":           Assassination,
	"kidnapping":              Kidnapping,
	"arrest":                  Arrest,
	"fraud":                   Fraud,
	"alien_abduction":         AlienAbduction,
	"dimension_rift":          DimensionRift,
	"blackhole":               Blackhole,
	"overdose":                Overdose,
	"heart_attack":            HeartAttack,
	"accident":                Accident,
	"peer_pressure":           PeerPressure,
	"recession":               Recession,
}

// LookupCard looks up a card by id and returns a new instance.
// Panics if the card is not found.
func LookupCard(id string) *Card {
	ctor, ok := CardRegistry[id]
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", id))
	}
	return ctor()
}

// Catalog is a validated, immutable set of cards split into the two draw
// pools. Pools are ordered by id so seeded draws are reproducible.
type Catalog struct {
	byID       map[string]*Card
	beneficial []*Card
	harmful    []*Card
}

// NewCatalog validates cards and indexes them. Ids must be unique.
func NewCatalog(cards ...*Card) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if card == nil {
			continue
		}
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.byID[card.ID] = card
		switch card.Category {
		case CategoryBeneficial:
			c.beneficial = append(c.beneficial, card)
		case CategoryHarmful:
			c.harmful = append(c.harmful, card)
		default:
			return nil, fmt.Errorf("card %q has unknown category %d", card.ID, card.Category)
		}
	}
	sortByID(c.beneficial)
	sortByID(c.harmful)
	return c, nil
}

// DefaultCatalog builds a catalog from every registered card.
func DefaultCatalog() *Catalog {
	cards := make([]*Card, 0, len(CardRegistry))
	for _, ctor := range CardRegistry {
		cards = append(cards, ctor())
	}
	c, err := NewCatalog(cards...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}

// WithRates returns a copy of the catalog with base rates overridden by
// card id. Unknown ids are rejected.
func (c *Catalog) WithRates(rates map[string]float64) (*Catalog, error) {
	for id := range rates {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("rate override for unknown card %q", id)
		}
	}
	cards := make([]*Card, 0, len(c.byID))
	for _, card := range c.All() {
		cp := *card
		if r, ok := rates[card.ID]; ok {
			cp.BaseRate = r
		}
		cards = append(cards, &cp)
	}
	return NewCatalog(cards...)
}

// Lookup returns the card with the given id.
func (c *Catalog) Lookup(id string) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Beneficial returns the beneficial pool.
func (c *Catalog) Beneficial() []*Card {
	return append([]*Card(nil), c.beneficial...)
}

// Harmful returns the harmful pool.
func (c *Catalog) Harmful() []*Card {
	return append([]*Card(nil), c.harmful...)
}

// All returns every card, beneficial pool first.
func (c *Catalog) All() []*Card {
	out := make([]*Card, 0, len(c.beneficial)+len(c.harmful))
	out = append(out, c.beneficial...)
	return append(out, c.harmful...)
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

func sortByID(cards []*Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
}
