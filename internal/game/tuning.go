package game

import "fmt"

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r IntRange) validate(name string) error {
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d < min %d", name, r.Max, r.Min)
	}
	return nil
}

// StartingEffect is an independent roll for a starting status effect.
type StartingEffect struct {
	Kind   EffectKind `yaml:"kind"`
	Chance float64    `yaml:"chance"`
	Levels IntRange   `yaml:"levels"`
}

// Tuning holds every numeric constant of the rules.
type Tuning struct {
	HandSize   int `yaml:"hand_size"`
	AgePerTurn int `yaml:"age_per_turn"`
	MaxAge     int `yaml:"max_age"`

	CompoundRate        float64 `yaml:"compound_rate"`
	AllowanceAmount     float64 `yaml:"allowance_amount"`
	PassiveIncomeAmount float64 `yaml:"passive_income_amount"`
	TraumaAbilityLoss   float64 `yaml:"trauma_ability_loss"`

	StartWealth   IntRange `yaml:"start_wealth"`
	StartGoodness IntRange `yaml:"start_goodness"`
	StartAbility  IntRange `yaml:"start_ability"`
	StartAge      IntRange `yaml:"start_age"`

	StartingEffects []StartingEffect `yaml:"starting_effects"`

	// Rates overrides catalog base rates by card id.
	Rates map[string]float64 `yaml:"rates"`
}

// DefaultTuning returns the standard rules.
func DefaultTuning() Tuning {
	return Tuning{
		HandSize:            4,
		AgePerTurn:          3,
		MaxAge:              160,
		CompoundRate:        0.1,
		AllowanceAmount:     30,
		PassiveIncomeAmount: 100,
		TraumaAbilityLoss:   5,
		StartWealth:         IntRange{Min: -500, Max: 1000},
		StartGoodness:       IntRange{Min: -50, Max: 100},
		StartAbility:        IntRange{Min: 0, Max: 100},
		StartAge:            IntRange{Min: 18, Max: 22},
		StartingEffects: []StartingEffect{
			{Kind: EffectAllowance, Chance: 0.5, Levels: IntRange{Min: 1, Max: 40}},
			{Kind: EffectPassiveIncome, Chance: 0.1, Levels: IntRange{Min: 1, Max: 10}},
			{Kind: EffectTrauma, Chance: 0.4, Levels: IntRange{Min: 1, Max: 3}},
		},
	}
}

// Validate rejects tunings the engine cannot run with.
func (t Tuning) Validate() error {
	if t.HandSize < 1 {
		return fmt.Errorf("hand_size must be >= 1, got %d", t.HandSize)
	}
	if t.AgePerTurn < 0 {
		return fmt.Errorf("age_per_turn must be >= 0, got %d", t.AgePerTurn)
	}
	if t.MaxAge < 1 {
		return fmt.Errorf("max_age must be >= 1, got %d", t.MaxAge)
	}
	for name, r := range map[string]IntRange{
		"start_wealth":   t.StartWealth,
		"start_goodness": t.StartGoodness,
		"start_ability":  t.StartAbility,
		"start_age":      t.StartAge,
	} {
		if err := r.validate(name); err != nil {
			return err
		}
	}
	for _, se := range t.StartingEffects {
		if se.Chance < 0 || se.Chance > 1 {
			return fmt.Errorf("starting effect %s: chance %g outside [0, 1]", se.Kind, se.Chance)
		}
		if se.Levels.Min < 1 {
			return fmt.Errorf("starting effect %s: levels must start at 1", se.Kind)
		}
		if err := se.Levels.validate("starting effect " + se.Kind.String()); err != nil {
			return err
		}
	}
	for id, rate := range t.Rates {
		if rate < 0 {
			return fmt.Errorf("rate for %q must be >= 0, got %g", id, rate)
		}
	}
	return nil
}
