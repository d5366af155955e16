package game

import (
	"fmt"
	"math"
)

// TickLine describes one applied status tick.
type TickLine struct {
	Kind    EffectKind
	Details string
}

// TickResult is the outcome of one end-of-turn tick phase.
type TickResult struct {
	Status Status
	Lines  []TickLine
	OldAge int
	NewAge int
}

// ApplyTicks runs the recurring status effects once, in fixed order:
// compound, addiction, allowance, passive income, trauma. Unconditional
// aging follows, then a single wealth clamp. Security has no tick.
//
// It must run exactly once per surviving turn; Engine enforces that.
func ApplyTicks(in Status, t Tuning) TickResult {
	s := in.Clone()
	res := TickResult{OldAge: in.Age}

	if lvl := s.Level(EffectCompound); lvl >= 1 {
		mult := 1 + float64(lvl)*t.CompoundRate
		old := s.Wealth
		s.Wealth *= mult
		res.Lines = append(res.Lines, TickLine{EffectCompound,
			fmt.Sprintf("wealth ×%g (%.0f → %.0f)", mult, math.Floor(old), math.Floor(s.Wealth))})
	}

	if lvl := s.Level(EffectAddiction); lvl >= 1 {
		s.Age += lvl
		res.Lines = append(res.Lines, TickLine{EffectAddiction, fmt.Sprintf("age +%d", lvl)})
	}

	if lvl := s.Level(EffectAllowance); lvl >= 1 {
		s.Wealth += t.AllowanceAmount
		s.SetLevel(EffectAllowance, lvl-1)
		details := fmt.Sprintf("wealth +%g, %d left", t.AllowanceAmount, lvl-1)
		if lvl-1 <= 0 {
			details = fmt.Sprintf("wealth +%g, allowance ended", t.AllowanceAmount)
		}
		res.Lines = append(res.Lines, TickLine{EffectAllowance, details})
	}

	if lvl := s.Level(EffectPassiveIncome); lvl >= 1 {
		gain := float64(lvl) * t.PassiveIncomeAmount
		s.Wealth += gain
		res.Lines = append(res.Lines, TickLine{EffectPassiveIncome, fmt.Sprintf("wealth +%g", gain)})
	}

	if lvl := s.Level(EffectTrauma); lvl >= 1 {
		loss := float64(lvl) * t.TraumaAbilityLoss
		s.Ability -= loss
		res.Lines = append(res.Lines, TickLine{EffectTrauma, fmt.Sprintf("ability -%g", loss)})
	}

	s.Age += t.AgePerTurn
	s.Wealth = ClampWealth(s.Wealth)

	res.Status = s
	res.NewAge = s.Age
	return res
}
