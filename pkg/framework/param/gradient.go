package param

import "math"

// Gradient describes the response curve between a parameter's normalized
// value (what hosts automate) and its plain value.
type Gradient struct {
	kind     gradientKind
	exponent float64
}

type gradientKind int

const (
	gradientLinear gradientKind = iota
	gradientPower
)

// Linear maps normalized values to the plain range proportionally.
var Linear = Gradient{kind: gradientLinear}

// Power returns a curve where plain = min + (max-min) * normalized^exp.
// Exponents below 1 spend more of the control travel near the top of the
// range, which suits gain in dB.
func Power(exp float64) Gradient {
	if exp <= 0 {
		return Linear
	}
	return Gradient{kind: gradientPower, exponent: exp}
}

// Exponent returns the power exponent, or 1 for the linear curve.
func (g Gradient) Exponent() float64 {
	if g.kind == gradientPower {
		return g.exponent
	}
	return 1
}

// Unnormalize maps a [0,1] value onto [min,max].
func (g Gradient) Unnormalize(normalized, min, max float64) float64 {
	normalized = clamp01(normalized)
	if g.kind == gradientPower {
		normalized = math.Pow(normalized, g.exponent)
	}
	return min + normalized*(max-min)
}

// Normalize maps a plain value onto [0,1], clamping out-of-range input.
func (g Gradient) Normalize(plain, min, max float64) float64 {
	if max <= min {
		return 0
	}
	normalized := clamp01((plain - min) / (max - min))
	if g.kind == gradientPower {
		normalized = math.Pow(normalized, 1/g.exponent)
	}
	return normalized
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
