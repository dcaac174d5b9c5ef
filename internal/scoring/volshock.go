package scoring

import "math"

// minBaselineStd floors the normalizing denominator so a flat baseline never
// divides by zero.
const minBaselineStd = 1e-6

// VolShock compares the variance of today's signal series against a baseline
// series, normalized by the baseline's standard deviation. The z-like
// statistic is clamped to [-3, 3] and mapped onto 0..10. Series too short to
// carry variance yield the neutral midpoint.
func VolShock(today, baseline []float64) float64 {
	if len(today) < 2 || len(baseline) < 2 {
		return Neutral
	}
	baseStd := math.Sqrt(variance(baseline))
	if baseStd < minBaselineStd {
		baseStd = minBaselineStd
	}
	z := (variance(today) - variance(baseline)) / baseStd
	return Round2(ToScale(z, -3, 3))
}

func variance(series []float64) float64 {
	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	var sq float64
	for _, v := range series {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(series))
}
