package scoring

import "math"

// Neutral is the midpoint returned by every scorer when there is no signal.
// Absence of signal is not an error condition.
const Neutral = 5.0

// Normalize maps raw from [inLo, inHi] onto [outLo, outHi], clamping raw to
// the input range first. All scorers share this so clamping and scaling
// behave identically everywhere.
func Normalize(raw, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	if raw < inLo {
		raw = inLo
	}
	if raw > inHi {
		raw = inHi
	}
	return outLo + (raw-inLo)*(outHi-outLo)/(inHi-inLo)
}

// ToScale maps raw from the given input range onto the standard 0..10 scale.
func ToScale(raw, inLo, inHi float64) float64 {
	return Normalize(raw, inLo, inHi, 0, 10)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
