package scoring

// Novelty measures how different today's term-frequency distribution is from
// a baseline distribution. Both are normalized to sum to 1 and compared with
// L1 distance, range 0..2, mapped onto 0..10. An empty side means no signal
// and yields the neutral midpoint.
func Novelty(today, baseline map[string]float64) float64 {
	if len(today) == 0 || len(baseline) == 0 {
		return Neutral
	}

	t := normalizeDist(today)
	b := normalizeDist(baseline)

	var l1 float64
	seen := make(map[string]bool, len(t)+len(b))
	for term, tv := range t {
		l1 += abs(tv - b[term])
		seen[term] = true
	}
	for term, bv := range b {
		if !seen[term] {
			l1 += bv
		}
	}
	return Round2(ToScale(l1, 0, 2))
}

func normalizeDist(dist map[string]float64) map[string]float64 {
	var sum float64
	for _, v := range dist {
		sum += v
	}
	out := make(map[string]float64, len(dist))
	if sum == 0 {
		return out
	}
	for k, v := range dist {
		out[k] = v / sum
	}
	return out
}
