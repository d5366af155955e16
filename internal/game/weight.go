package game

import "math"

// RateModifier scales a card's base appearance rate for a snapshot.
// Negative results are treated as 0 by Weight.
type RateModifier interface {
	Multiplier(s Status) float64
}

// RateFunc adapts a plain function to RateModifier.
type RateFunc func(s Status) float64

func (f RateFunc) Multiplier(s Status) float64 {
	return f(s)
}

// CurveKind selects the shape of a Curve.
type CurveKind int

const (
	CurveLinear      CurveKind = iota // Slope*(v-Offset) + Base
	CurveExponential                  // Base * exp(Exponent*(v-Offset))
	CurveInverse                      // Coefficient / (v+Offset)
	CurveSigmoid                      // 1 / (1 + exp(-Steepness*(v-Midpoint)))
	CurveThreshold                    // v >= Threshold ? High : Low
)

// Curve maps one attribute value to a weight in [Min, Max]. Zero-valued
// parameters fall back to the defaults applied by Normalized.
type Curve struct {
	Kind        CurveKind
	Slope       float64
	Offset      float64
	Base        float64
	Exponent    float64
	Coefficient float64
	Steepness   float64
	Midpoint    float64
	Threshold   float64
	High        float64
	Low         float64
	Min         float64
	Max         float64
}

// Normalized fills unset parameters with their defaults.
func (c Curve) Normalized() Curve {
	if c.Slope == 0 {
		c.Slope = 1
	}
	if c.Base == 0 {
		c.Base = 1
	}
	if c.Exponent == 0 {
		c.Exponent = 1
	}
	if c.Coefficient == 0 {
		c.Coefficient = 1
	}
	if c.Steepness == 0 {
		c.Steepness = 1
	}
	if c.Midpoint == 0 {
		c.Midpoint = 50
	}
	if c.Threshold == 0 {
		c.Threshold = 50
	}
	if c.High == 0 {
		c.High = 2
	}
	if c.Low == 0 {
		c.Low = 0.5
	}
	if c.Max == 0 {
		c.Max = 10
	}
	return c
}

// Eval computes the clamped weight for v.
func (c Curve) Eval(v float64) float64 {
	p := c.Normalized()
	var w float64
	switch p.Kind {
	case CurveLinear:
		w = p.Slope*(v-p.Offset) + p.Base
	case CurveExponential:
		w = p.Base * math.Exp(p.Exponent*(v-p.Offset))
	case CurveInverse:
		d := v + p.Offset
		if d == 0 {
			w = p.Max
		} else {
			w = p.Coefficient / d
		}
	case CurveSigmoid:
		w = 1 / (1 + math.Exp(-p.Steepness*(v-p.Midpoint)))
	case CurveThreshold:
		if v >= p.Threshold {
			w = p.High
		} else {
			w = p.Low
		}
	default:
		w = 1
	}
	if math.IsNaN(w) {
		return p.Min
	}
	return math.Max(p.Min, math.Min(p.Max, w))
}

// --- Presets ---

// PositiveLinear grows with the value.
func PositiveLinear(slope float64) *Curve {
	return &Curve{Kind: CurveLinear, Slope: slope, Base: 1}
}

// NegativeLinear shrinks as the value grows.
func NegativeLinear(slope float64) *Curve {
	return &Curve{Kind: CurveLinear, Slope: -math.Abs(slope), Base: 1}
}

// LowValueExponential rises steeply for low values, capped at 5.
func LowValueExponential(steepness float64) *Curve {
	return &Curve{Kind: CurveExponential, Exponent: -steepness, Base: 1, Max: 5}
}

// AgeExponential rises steeply past baseAge.
func AgeExponential(baseAge, steepness float64) *Curve {
	return &Curve{Kind: CurveExponential, Exponent: steepness, Offset: baseAge, Base: 0.1, Max: 10}
}

// BelowThreshold weighs values below threshold heavily.
func BelowThreshold(threshold, high, low float64) *Curve {
	return &Curve{Kind: CurveThreshold, Threshold: threshold, High: low, Low: high}
}

// Inverse decays as coefficient / (v + 1), capped at 5.
func Inverse(coefficient float64) *Curve {
	return &Curve{Kind: CurveInverse, Coefficient: coefficient, Offset: 1, Max: 5}
}

// CombineMethod merges per-attribute weights.
type CombineMethod int

const (
	CombineMultiply CombineMethod = iota
	CombineAdd
	CombineAverage
	CombineMax
	CombineMin
)

// StatusWeights is a data-driven RateModifier: one optional curve per
// attribute, merged with Combine.
type StatusWeights struct {
	Wealth   *Curve
	Goodness *Curve
	Ability  *Curve
	Age      *Curve
	Combine  CombineMethod
}

func (sw StatusWeights) Multiplier(s Status) float64 {
	var weights []float64
	if sw.Wealth != nil {
		weights = append(weights, sw.Wealth.Eval(s.Wealth))
	}
	if sw.Goodness != nil {
		weights = append(weights, sw.Goodness.Eval(s.Goodness))
	}
	if sw.Ability != nil {
		weights = append(weights, sw.Ability.Eval(s.Ability))
	}
	if sw.Age != nil {
		weights = append(weights, sw.Age.Eval(float64(s.Age)))
	}
	return combine(weights, sw.Combine)
}

func combine(weights []float64, method CombineMethod) float64 {
	if len(weights) == 0 {
		return 1
	}
	switch method {
	case CombineAdd, CombineAverage:
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if method == CombineAverage {
			return sum / float64(len(weights))
		}
		return sum
	case CombineMax:
		m := weights[0]
		for _, w := range weights[1:] {
			m = math.Max(m, w)
		}
		return m
	case CombineMin:
		m := weights[0]
		for _, w := range weights[1:] {
			m = math.Min(m, w)
		}
		return m
	default:
		p := 1.0
		for _, w := range weights {
			p *= w
		}
		return p
	}
}
