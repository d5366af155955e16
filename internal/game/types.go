package game

import "fmt"

// --- Enums ---

type Category int

const (
	CategoryBeneficial Category = iota
	CategoryHarmful
)

func (c Category) String() string {
	switch c {
	case CategoryBeneficial:
		return "beneficial"
	case CategoryHarmful:
		return "harmful"
	default:
		return "unknown"
	}
}

// GameOverReason tags a terminal outcome.
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonOldAge
	ReasonAssassination
	ReasonAlienAbduction
	ReasonDimensionSucked
	ReasonBlackhole
	ReasonSuicide
	ReasonOverdose
	ReasonExecution
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonOldAge:
		return "old_age"
	case ReasonAssassination:
		return "assassination"
	case ReasonAlienAbduction:
		return "alien_abduction"
	case ReasonDimensionSucked:
		return "dimension_sucked"
	case ReasonBlackhole:
		return "blackhole"
	case ReasonSuicide:
		return "suicide"
	case ReasonOverdose:
		return "overdose"
	case ReasonExecution:
		return "execution"
	default:
		return ""
	}
}

// Epitaph is the line shown on the game over screen.
func (r GameOverReason) Epitaph() string {
	switch r {
	case ReasonOldAge:
		return "Withered away of old age"
	case ReasonAssassination:
		return "Assassinated"
	case ReasonAlienAbduction:
		return "Dissected by aliens"
	case ReasonDimensionSucked:
		return "Sucked into another dimension"
	case ReasonBlackhole:
		return "Swallowed by a black hole"
	case ReasonSuicide:
		return "Took their own life"
	case ReasonOverdose:
		return "Overdosed"
	case ReasonExecution:
		return "Executed by the state"
	default:
		return "Vanished for unknown reasons"
	}
}

// ParseGameOverReason maps a reason tag back to its enumerant.
func ParseGameOverReason(s string) (GameOverReason, error) {
	for r := ReasonOldAge; r <= ReasonExecution; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	if s == "" {
		return ReasonNone, nil
	}
	return ReasonNone, fmt.Errorf("unknown game over reason %q", s)
}

// EffectKind names a persistent, leveled status effect.
type EffectKind int

const (
	EffectCompound EffectKind = iota + 1
	EffectAddiction
	EffectAllowance
	EffectPassiveIncome
	EffectTrauma
	EffectSecurity
)

// AllEffectKinds lists every status effect in tick order.
var AllEffectKinds = []EffectKind{
	EffectCompound,
	EffectAddiction,
	EffectAllowance,
	EffectPassiveIncome,
	EffectTrauma,
	EffectSecurity,
}

func (k EffectKind) String() string {
	switch k {
	case EffectCompound:
		return "compound"
	case EffectAddiction:
		return "addiction"
	case EffectAllowance:
		return "allowance"
	case EffectPassiveIncome:
		return "passive_income"
	case EffectTrauma:
		return "trauma"
	case EffectSecurity:
		return "security"
	default:
		return "unknown"
	}
}

// Title is the display name of the effect.
func (k EffectKind) Title() string {
	switch k {
	case EffectCompound:
		return "Compound Interest"
	case EffectAddiction:
		return "Addiction"
	case EffectAllowance:
		return "Allowance"
	case EffectPassiveIncome:
		return "Passive Income"
	case EffectTrauma:
		return "Trauma"
	case EffectSecurity:
		return "Bodyguards"
	default:
		return "Unknown"
	}
}

// ParseEffectKind maps a canonical key back to its EffectKind.
func ParseEffectKind(s string) (EffectKind, error) {
	for _, k := range AllEffectKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown status effect %q", s)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEffectKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Attribute selects a numeric field of a Status, used by range gates,
// tiered effects and rate curves.
type Attribute int

const (
	AttrWealth Attribute = iota
	AttrGoodness
	AttrAbility
	AttrAge
)

func (a Attribute) String() string {
	switch a {
	case AttrWealth:
		return "wealth"
	case AttrGoodness:
		return "goodness"
	case AttrAbility:
		return "ability"
	case AttrAge:
		return "age"
	default:
		return ""
	}
}

// Phase is the lifecycle state of an Engine.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseAwaitingSelection
	PhaseResolving
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseAwaitingSelection:
		return "AwaitingSelection"
	case PhaseResolving:
		return "Resolving"
	case PhaseTerminated:
		return "Terminated"
	default:
		return "None"
	}
}
