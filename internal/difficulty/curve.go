// Package difficulty synthesizes the normalized difficulty-over-time curve
// from style and pace choices.
package difficulty

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/forgelab/gamegen-go/internal/choices"
)

// Pace multipliers. Faster pace steepens every style's ramp.
var paceMultipliers = map[choices.Pace]decimal.Decimal{
	choices.PaceFast:   decimal.RequireFromString("1.3"),
	choices.PaceMedium: decimal.RequireFromString("1.0"),
	choices.PaceSlow:   decimal.RequireFromString("0.7"),
}

// Per-style linear coefficients: value = base + slope*t*pm. The rollercoaster
// style adds a sine swell on top of its linear base.
var styleCoefficients = map[choices.DifficultyStyle][2]decimal.Decimal{
	choices.DifficultyRelaxed:       {decimal.RequireFromString("0.2"), decimal.RequireFromString("0.3")},
	choices.DifficultySteady:        {decimal.RequireFromString("0.3"), decimal.RequireFromString("0.5")},
	choices.DifficultyHardcore:      {decimal.RequireFromString("0.6"), decimal.RequireFromString("0.35")},
	choices.DifficultyRollercoaster: {decimal.RequireFromString("0.35"), decimal.RequireFromString("0.25")},
}

const swellAmplitude = 0.2

// GenerateCurve returns max(3,count) values in [0,1]. The linear component is
// computed in decimal arithmetic so identical inputs produce identical
// values regardless of host float behavior; the curve is part of the
// reproducibility contract.
func GenerateCurve(style choices.DifficultyStyle, pace choices.Pace, count int) []float64 {
	if count < 3 {
		count = 3
	}

	pm, ok := paceMultipliers[pace]
	if !ok {
		pm = paceMultipliers[choices.PaceMedium]
	}
	coeff, ok := styleCoefficients[style]
	if !ok {
		coeff = styleCoefficients[choices.DifficultySteady]
	}
	base, slope := coeff[0], coeff[1]

	denom := decimal.NewFromInt(int64(count - 1))
	curve := make([]float64, count)
	for i := 0; i < count; i++ {
		t := decimal.NewFromInt(int64(i)).Div(denom)
		v := base.Add(slope.Mul(t).Mul(pm)).InexactFloat64()

		if style == choices.DifficultyRollercoaster {
			tf := float64(i) / float64(count-1)
			v += swellAmplitude * math.Sin(4*math.Pi*tf)
		}

		curve[i] = clamp01(v)
	}
	return curve
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
