package game

import "math"

// ===============================
// Beneficial cards
// ===============================

// Labor: hard work pays, but it ages you.
func Labor() *Card {
	return &Card{
		ID:          "labor",
		Name:        "Labor",
		Category:    CategoryBeneficial,
		Description: "Grinding work earns money but takes its toll.",
		BaseRate:    0.8,
		Effect:      Delta{Wealth: 50, Age: 1},
	}
}

// Pension: a steady trickle.
func Pension() *Card {
	return &Card{
		ID:          "pension",
		Name:        "Pension",
		Category:    CategoryBeneficial,
		Description: "A stable source of income.",
		BaseRate:    0.6,
		Effect:      Delta{Wealth: 30},
	}
}

// Investment: starts or deepens compound interest.
func Investment() *Card {
	return &Card{
		ID:          "investment",
		Name:        "Investment",
		Category:    CategoryBeneficial,
		Description: "Let compound interest do the work.",
		BaseRate:    0.5,
		Effect:      Delta{Levels: map[EffectKind]int{EffectCompound: 1}},
	}
}

// Stocks: wealth ×1.2.
func Stocks() *Card {
	return &Card{
		ID:          "stocks",
		Name:        "Stocks",
		Category:    CategoryBeneficial,
		Description: "Take a risk for a bigger return.",
		BaseRate:    0.4,
		Effect:      Scale{Wealth: 1.2},
	}
}

// Business: wealth ×1.4; capable people find it more often.
func Business() *Card {
	return &Card{
		ID:           "business",
		Name:         "Business",
		Category:     CategoryBeneficial,
		Description:  "Start a company and earn big.",
		BaseRate:     0.2,
		RateModifier: StatusWeights{Ability: PositiveLinear(0.01)},
		Effect:       Scale{Wealth: 1.4},
	}
}

// SmartInvestment: multiplier tier depends on ability at resolution time.
func SmartInvestment() *Card {
	return &Card{
		ID:          "smart_investment",
		Name:        "Smart Investment",
		Category:    CategoryBeneficial,
		Description: "Returns scale with your ability.",
		BaseRate:    0.3,
		Effect: Tiered{
			On: Selector{Attr: AttrAbility},
			Tiers: []Tier{
				{Below: 50, Effect: Scale{Wealth: 1.1, Text: "wealth ×1.1"}},
				{Below: 80, Effect: Scale{Wealth: 1.3, Text: "decent ability, wealth ×1.3"}},
			},
			Else: Scale{Wealth: 1.5, Text: "high ability, wealth ×1.5"},
		},
	}
}

// CompoundInterestMastery: starts compound at 1 (+5 ability), or pays a
// bonus of level × 50 and increments it.
func CompoundInterestMastery() *Card {
	return &Card{
		ID:          "compound_interest_mastery",
		Name:        "Compound Interest Mastery",
		Category:    CategoryBeneficial,
		Description: "Accelerates an existing compound effect.",
		BaseRate:    0.3,
		Effect: Mastery{
			Kind:           EffectCompound,
			Start:          Delta{Ability: 5},
			PerLevelWealth: 50,
		},
	}
}

// WealthDoubler: wealth ×2.
func WealthDoubler() *Card {
	return &Card{
		ID:          "wealth_doubler",
		Name:        "Wealth Doubler",
		Category:    CategoryBeneficial,
		Description: "Doubles your current wealth.",
		BaseRate:    0.1,
		Effect:      Scale{Wealth: 2},
	}
}

// Tutoring: earn your ability in wealth, then grow a little.
func Tutoring() *Card {
	return &Card{
		ID:          "tutoring",
		Name:        "Tutoring",
		Category:    CategoryBeneficial,
		Description: "Teach what you know; learn while teaching.",
		BaseRate:    0.5,
		Effect: Derived{From: func(s Status) Delta {
			return Delta{Wealth: s.Ability, Ability: 5, Goodness: 5}
		}},
	}
}

// Volunteer: goodness up, a little money down.
func Volunteer() *Card {
	return &Card{
		ID:          "volunteer",
		Name:        "Volunteer",
		Category:    CategoryBeneficial,
		Description: "Give your time to others.",
		BaseRate:    0.4,
		Effect:      Delta{Goodness: 15, Wealth: -10},
	}
}

// Study: ability up, at the cost of a year.
func Study() *Card {
	return &Card{
		ID:           "study",
		Name:         "Study",
		Category:     CategoryBeneficial,
		Description:  "Hit the books.",
		BaseRate:     0.5,
		RateModifier: StatusWeights{Age: NegativeLinear(0.01)},
		Effect:       Delta{Ability: 10, Age: 1},
	}
}

// HireBodyguards: buys two levels of security.
func HireBodyguards() *Card {
	return &Card{
		ID:           "hire_bodyguards",
		Name:         "Hire Bodyguards",
		Category:     CategoryBeneficial,
		Description:  "Protection against assassins and kidnappers.",
		BaseRate:     0.2,
		RateModifier: StatusWeights{Wealth: &Curve{Kind: CurveThreshold, Threshold: 1000, High: 3, Low: 0.5}},
		Effect: Afford{
			Cost:    300,
			Then:    Delta{Levels: map[EffectKind]int{EffectSecurity: 2}},
			Refusal: "bodyguards want 300 up front; you cannot pay",
		},
	}
}

// RentalProperty: buys one level of passive income.
func RentalProperty() *Card {
	return &Card{
		ID:          "rental_property",
		Name:        "Rental Property",
		Category:    CategoryBeneficial,
		Description: "Let tenants pay your bills.",
		BaseRate:    0.15,
		Effect: Afford{
			Cost:    1000,
			Then:    Delta{Levels: map[EffectKind]int{EffectPassiveIncome: 1}},
			Refusal: "the down payment is 1000; the bank says no",
		},
	}
}

// Therapy: heals one level of trauma. Much likelier while traumatized.
func Therapy() *Card {
	return &Card{
		ID:          "therapy",
		Name:        "Therapy",
		Category:    CategoryBeneficial,
		Description: "Talk it through.",
		BaseRate:    0.2,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Has(EffectTrauma) {
				return 3
			}
			return 0.3
		}),
		Effect: Afford{
			Cost:    50,
			Then:    Delta{Ability: 3, Levels: map[EffectKind]int{EffectTrauma: -1}},
			Refusal: "therapy costs 50; you cannot afford it",
		},
	}
}

// Rejuvenation: rare and expensive; only offered past 60.
func Rejuvenation() *Card {
	return &Card{
		ID:          "rejuvenation",
		Name:        "Rejuvenation",
		Category:    CategoryBeneficial,
		Description: "Experimental treatment that turns back the clock.",
		BaseRate:    0.05,
		Gates:       Gates{Age: AtLeast(60)},
		Effect: Afford{
			Cost:    5000,
			Then:    Delta{Age: -10},
			Refusal: "the clinic wants 5000; you walk out older",
		},
	}
}

// PartyDrugs: a sharp mind tonight, a habit tomorrow.
func PartyDrugs() *Card {
	return &Card{
		ID:          "party_drugs",
		Name:        "Party Drugs",
		Category:    CategoryBeneficial,
		Description: "Feels great. Probably fine.",
		BaseRate:    0.2,
		Gates:       Gates{Age: AtMost(60)},
		Effect:      Delta{Ability: 10, Goodness: -5, Levels: map[EffectKind]int{EffectAddiction: 1}},
	}
}

// Inheritance: more likely while parents still send an allowance.
func Inheritance() *Card {
	return &Card{
		ID:          "inheritance",
		Name:        "Inheritance",
		Category:    CategoryBeneficial,
		Description: "A relative leaves you something.",
		BaseRate:    0.05,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Has(EffectAllowance) {
				return 3
			}
			return 1
		}),
		Effect: Delta{Wealth: 500},
	}
}

// FamilySupport: parents chip in for a while; only while young.
func FamilySupport() *Card {
	return &Card{
		ID:          "family_support",
		Name:        "Family Support",
		Category:    CategoryBeneficial,
		Description: "Your parents send money every year.",
		BaseRate:    0.3,
		Gates:       Gates{Age: AtMost(30)},
		Effect:      Delta{Goodness: -2, Levels: map[EffectKind]int{EffectAllowance: 10}},
	}
}

// ===============================
// Harmful cards
// ===============================

// OldAge: game over; the rate climbs one step per year past 50.
func OldAge() *Card {
	return &Card{
		ID:          "old_age",
		Name:        "Old Age",
		Category:    CategoryHarmful,
		Description: "Your time has come.",
		BaseRate:    0.01,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Age > 50 {
				return 1 + float64(s.Age-50)
			}
			return 1
		}),
		Effect: Terminal{Reason: ReasonOldAge},
	}
}

// MinorCrime: goodness -10.
func MinorCrime() *Card {
	return &Card{
		ID:          "minor_crime",
		Name:        "Minor Crime",
		Category:    CategoryHarmful,
		Description: "A small crime tarnishes your name.",
		BaseRate:    0.3,
		Effect:      Delta{Goodness: -10},
	}
}

// TrafficViolation: a heavy fine.
func TrafficViolation() *Card {
	return &Card{
		ID:          "traffic_violation",
		Name:        "Traffic Violation",
		Category:    CategoryHarmful,
		Description: "A heavy fine.",
		BaseRate:    0.4,
		Effect:      Delta{Wealth: -500},
	}
}

// Aging: age +2.
func Aging() *Card {
	return &Card{
		ID:          "aging",
		Name:        "Aging",
		Category:    CategoryHarmful,
		Description: "Time cannot be stopped.",
		BaseRate:    0.6,
		Effect:      Delta{Age: 2},
	}
}

// WealthDependentCrisis: the richer you are, the bigger the scam.
func WealthDependentCrisis() *Card {
	return &Card{
		ID:          "wealth_dependent_crisis",
		Name:        "Crisis",
		Category:    CategoryHarmful,
		Description: "The wealthier you are, the more you attract trouble.",
		BaseRate:    0.2,
		Effect: Tiered{
			On: Selector{Attr: AttrWealth},
			Tiers: []Tier{
				{Below: 100, Effect: Delta{Goodness: -5, Text: "poverty drags you down, goodness -5"}},
				{Below: 500, Effect: Delta{Wealth: -50, Goodness: -3, Text: "petty fraud, wealth -50, goodness -3"}},
				{Below: 2000, Effect: Seq{Scale{Wealth: 0.8}, Delta{Goodness: -10}}},
			},
			Else: Seq{Scale{Wealth: 0.6}, Delta{Goodness: -20}},
		},
	}
}

// StateDependentDisease: worse when compound interest keeps you up at night.
func StateDependentDisease() *Card {
	return &Card{
		ID:          "state_dependent_disease",
		Name:        "Illness",
		Category:    CategoryHarmful,
		Description: "Symptoms depend on your lifestyle.",
		BaseRate:    0.1,
		Effect: Tiered{
			On: Selector{Level: EffectCompound},
			Tiers: []Tier{
				{Below: 1, Effect: Delta{Ability: -10, Wealth: -50, Text: "a common illness, ability -10, wealth -50"}},
			},
			Else: Delta{Ability: -15, Wealth: -100, Goodness: -5, Text: "investment stress, ability -15, wealth -100, goodness -5"},
		},
	}
}

// WealthHalver: wealth ×0.5.
func WealthHalver() *Card {
	return &Card{
		ID:          "wealth_halver",
		Name:        "Wealth Halver",
		Category:    CategoryHarmful,
		Description: "Half of everything, gone.",
		BaseRate:    0.15,
		Effect:      Scale{Wealth: 0.5},
	}
}

// Assassination: extreme goodness either way draws killers; bodyguards
// absorb one attempt each.
func Assassination() *Card {
	return &Card{
		ID:          "assassination",
		Name:        "Assassination",
		Category:    CategoryHarmful,
		Description: "Someone wants you dead.",
		BaseRate:    0.02,
		RateModifier: RateFunc(func(s Status) float64 {
			d := math.Abs(s.Goodness - 25)
			if d < 75 {
				return 0.2
			}
			return 1 + (d-75)/25
		}),
		Effect: Guarded{
			Protection: EffectSecurity,
			Mild:       Delta{Wealth: -100, Text: "the assassin is driven off; medical bills -100"},
			Severe:     Terminal{Reason: ReasonAssassination},
		},
	}
}

// Kidnapping: ransom and trauma unless guarded.
func Kidnapping() *Card {
	return &Card{
		ID:           "kidnapping",
		Name:         "Kidnapping",
		Category:     CategoryHarmful,
		Description:  "Ransom is demanded.",
		BaseRate:     0.05,
		RateModifier: StatusWeights{Wealth: PositiveLinear(0.001)},
		Effect: Guarded{
			Protection: EffectSecurity,
			Mild:       Narrative{Text: "the kidnappers are stopped at the door"},
			Severe: Seq{
				Scale{Wealth: 0.7, Text: "ransom paid, wealth ×0.7"},
				Delta{Levels: map[EffectKind]int{EffectTrauma: 1}},
			},
		},
	}
}

// Arrest: only drawn while goodness is negative; the truly wicked hang.
func Arrest() *Card {
	return &Card{
		ID:          "arrest",
		Name:        "Arrest",
		Category:    CategoryHarmful,
		Description: "The law catches up with you.",
		BaseRate:    0.3,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Goodness >= 0 {
				return 0
			}
			return 1 + -s.Goodness/20
		}),
		Effect: Tiered{
			On: Selector{Attr: AttrGoodness},
			Tiers: []Tier{
				{Below: -200, Effect: Terminal{Reason: ReasonExecution}},
			},
			Else: Delta{Wealth: -300, Age: 5, Goodness: 20, Text: "five years inside, wealth -300, goodness +20"},
		},
	}
}

// Fraud: preys on low ability.
func Fraud() *Card {
	return &Card{
		ID:           "fraud",
		Name:         "Fraud",
		Category:     CategoryHarmful,
		Description:  "A too-good-to-be-true offer.",
		BaseRate:     0.2,
		RateModifier: StatusWeights{Ability: LowValueExponential(0.03)},
		Effect: Tiered{
			On: Selector{Attr: AttrAbility},
			Tiers: []Tier{
				{Below: 30, Effect: Scale{Wealth: 0.7, Text: "you fall for it, wealth ×0.7"}},
				{Below: 60, Effect: Delta{Wealth: -100, Text: "you lose a little, wealth -100"}},
			},
			Else: Narrative{Text: "you see through the scam"},
		},
	}
}

// AlienAbduction: game over.
func AlienAbduction() *Card {
	return &Card{
		ID:          "alien_abduction",
		Name:        "Alien Abduction",
		Category:    CategoryHarmful,
		Description: "Bright lights in the sky.",
		BaseRate:    0.002,
		Effect:      Terminal{Reason: ReasonAlienAbduction},
	}
}

// DimensionRift: game over.
func DimensionRift() *Card {
	return &Card{
		ID:          "dimension_rift",
		Name:        "Dimension Rift",
		Category:    CategoryHarmful,
		Description: "Reality tears open beneath you.",
		BaseRate:    0.002,
		Effect:      Terminal{Reason: ReasonDimensionSucked},
	}
}

// Blackhole: only fatal to the fabulously wealthy; others lose a year to
// time dilation.
func Blackhole() *Card {
	return &Card{
		ID:           "blackhole",
		Name:         "Black Hole",
		Category:     CategoryHarmful,
		Description:  "Great mass attracts great mass.",
		BaseRate:     0.005,
		RateModifier: StatusWeights{Wealth: &Curve{Kind: CurveThreshold, Threshold: 1e6, High: 10, Low: 1}},
		Effect: Terminal{
			Reason:   ReasonBlackhole,
			If:       func(s Status) bool { return s.Wealth >= 1e6 },
			NearMiss: Delta{Age: 1, Text: "it passes by; time dilation costs you a year"},
		},
	}
}

// Overdose: only drawn while addicted; fatal from level 3.
func Overdose() *Card {
	return &Card{
		ID:          "overdose",
		Name:        "Overdose",
		Category:    CategoryHarmful,
		Description: "One too many.",
		BaseRate:    0.1,
		RateModifier: RateFunc(func(s Status) float64 {
			return float64(s.Level(EffectAddiction))
		}),
		Effect: Terminal{
			Reason:   ReasonOverdose,
			If:       func(s Status) bool { return s.Level(EffectAddiction) >= 3 },
			NearMiss: Delta{Ability: -10, Age: 2, Text: "rushed to hospital in time, ability -10, age +2"},
		},
	}
}

// HeartAttack: never drawn before 70.
func HeartAttack() *Card {
	return &Card{
		ID:          "heart_attack",
		Name:        "Heart Attack",
		Category:    CategoryHarmful,
		Description: "Your heart gives out, for now.",
		BaseRate:    0.3,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Age < 70 {
				return 0
			}
			return 1 + float64(s.Age-70)/10
		}),
		Effect: Delta{Wealth: -200, Ability: -10, Age: 2},
	}
}

// Accident: leaves a scar.
func Accident() *Card {
	return &Card{
		ID:          "accident",
		Name:        "Accident",
		Category:    CategoryHarmful,
		Description: "Wrong place, wrong time.",
		BaseRate:    0.2,
		Effect:      Delta{Ability: -5, Levels: map[EffectKind]int{EffectTrauma: 1}},
	}
}

// PeerPressure: the young are easily led.
func PeerPressure() *Card {
	return &Card{
		ID:          "peer_pressure",
		Name:        "Peer Pressure",
		Category:    CategoryHarmful,
		Description: "Everyone else is doing it.",
		BaseRate:    0.1,
		Gates:       Gates{Age: AtMost(40)},
		Effect:      Delta{Goodness: -5, Levels: map[EffectKind]int{EffectAddiction: 1}},
	}
}

// Recession: wealth ×0.9 and one level of passive income lost.
func Recession() *Card {
	return &Card{
		ID:          "recession",
		Name:        "Recession",
		Category:    CategoryHarmful,
		Description: "The market turns.",
		BaseRate:    0.15,
		RateModifier: RateFunc(func(s Status) float64 {
			if s.Has(EffectPassiveIncome) {
				return 2
			}
			return 0.5
		}),
		Effect: Seq{
			Scale{Wealth: 0.9},
			Delta{Levels: map[EffectKind]int{EffectPassiveIncome: -1}, Text: "tenants leave"},
		},
	}
}
