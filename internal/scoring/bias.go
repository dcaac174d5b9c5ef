package scoring

// BiasIntensity measures how far the left and right buckets diverge from the
// center for some dimension: |left-center| + |right-center|, theoretical
// range 0..20, mapped onto 0..10. A missing side defaults to the center value
// and therefore contributes zero divergence.
func BiasIntensity(left, center, right float64, hasLeft, hasRight bool) float64 {
	if !hasLeft {
		left = center
	}
	if !hasRight {
		right = center
	}
	raw := abs(left-center) + abs(right-center)
	return Round2(ToScale(raw, 0, 20))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
