package game

import "testing"

func TestApplyTicksOrder(t *testing.T) {
	in := Status{
		Wealth:  1000,
		Ability: 50,
		Age:     20,
		Effects: map[EffectKind]int{
			EffectCompound:      2,
			EffectAddiction:     1,
			EffectAllowance:     1,
			EffectPassiveIncome: 1,
			EffectTrauma:        2,
			EffectSecurity:      3,
		},
	}
	res := ApplyTicks(in, DefaultTuning())
	s := res.Status

	// 1000 × 1.2 + 30 + 100
	if !near(s.Wealth, 1330) {
		t.Errorf("wealth = %g, want 1330", s.Wealth)
	}
	if s.Ability != 40 {
		t.Errorf("ability = %g, want 40", s.Ability)
	}
	if s.Age != 24 || res.OldAge != 20 || res.NewAge != 24 {
		t.Errorf("age = %d (old %d new %d), want 24", s.Age, res.OldAge, res.NewAge)
	}
	if s.Has(EffectAllowance) {
		t.Error("exhausted allowance should be removed")
	}
	if s.Level(EffectSecurity) != 3 {
		t.Errorf("security has no tick, got level %d", s.Level(EffectSecurity))
	}

	wantOrder := []EffectKind{EffectCompound, EffectAddiction, EffectAllowance, EffectPassiveIncome, EffectTrauma}
	if len(res.Lines) != len(wantOrder) {
		t.Fatalf("got %d tick lines, want %d", len(res.Lines), len(wantOrder))
	}
	for i, k := range wantOrder {
		if res.Lines[i].Kind != k {
			t.Errorf("line %d is %s, want %s", i, res.Lines[i].Kind, k)
		}
	}

	if in.Wealth != 1000 || in.Level(EffectAllowance) != 1 {
		t.Errorf("input mutated: %s", in)
	}
}

func TestCompoundIgnoresAddiction(t *testing.T) {
	base := Status{Wealth: 500, Age: 30, Effects: map[EffectKind]int{EffectCompound: 1}}
	addicted := base.Clone()
	addicted.SetLevel(EffectAddiction, 5)

	a := ApplyTicks(base, DefaultTuning())
	b := ApplyTicks(addicted, DefaultTuning())

	if a.Status.Wealth != b.Status.Wealth {
		t.Errorf("addiction changed compound growth: %g vs %g", a.Status.Wealth, b.Status.Wealth)
	}
	if b.Status.Age != 30+5+3 {
		t.Errorf("addicted age = %d, want 38", b.Status.Age)
	}
}

func TestAllowanceCountsDown(t *testing.T) {
	s := Status{Wealth: 0, Effects: map[EffectKind]int{EffectAllowance: 3}}
	tuning := DefaultTuning()
	for want := 2; want >= 0; want-- {
		s = ApplyTicks(s, tuning).Status
		if got := s.Level(EffectAllowance); got != want {
			t.Fatalf("allowance level = %d, want %d", got, want)
		}
		if lvl, present := s.Effects[EffectAllowance]; present && lvl <= 0 {
			t.Fatalf("allowance stored at level %d", lvl)
		}
	}
	if s.Wealth != 90 {
		t.Errorf("wealth = %g, want 90", s.Wealth)
	}
	s = ApplyTicks(s, tuning).Status
	if s.Wealth != 90 {
		t.Errorf("allowance paid after it ended: %g", s.Wealth)
	}
}

func TestApplyTicksClamps(t *testing.T) {
	s := Status{Wealth: 9e14, Effects: map[EffectKind]int{EffectCompound: 10}}
	if got := ApplyTicks(s, DefaultTuning()).Status.Wealth; got != WealthCap {
		t.Errorf("wealth = %g, want cap %g", got, WealthCap)
	}
}

func TestApplyTicksPlainAging(t *testing.T) {
	s := Status{Wealth: 20, Goodness: 5, Ability: 5, Age: 20}
	res := ApplyTicks(s, DefaultTuning())
	want := Status{Wealth: 20, Goodness: 5, Ability: 5, Age: 23}
	if !res.Status.Equal(want) {
		t.Errorf("got %s, want %s", res.Status, want)
	}
	if len(res.Lines) != 0 {
		t.Errorf("no effects active, got lines %v", res.Lines)
	}
}

func TestApplyTicksUsesTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.AgePerTurn = 1
	tuning.PassiveIncomeAmount = 10
	s := Status{Age: 40, Effects: map[EffectKind]int{EffectPassiveIncome: 3}}
	res := ApplyTicks(s, tuning)
	if res.Status.Wealth != 30 || res.Status.Age != 41 {
		t.Errorf("got %s", res.Status)
	}
}
