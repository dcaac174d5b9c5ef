package scoring

import "github.com/jonreiter/govader"

// ComparativeFunc returns a comparative sentiment score for a piece of text,
// on a symmetric scale around zero. The pipeline injects a VADER-backed
// implementation; tests inject fixed functions.
type ComparativeFunc func(text string) float64

// VaderComparative builds a ComparativeFunc on govader's compound score,
// which lives in [-1, 1].
func VaderComparative() ComparativeFunc {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return func(text string) float64 {
		return analyzer.PolarityScores(text).Compound
	}
}

// GeneralSentiment averages the per-headline comparative score and maps it
// from [-1, 1] onto 0..10. No headlines yields the neutral midpoint.
func GeneralSentiment(headlines []string, comparative ComparativeFunc) float64 {
	if len(headlines) == 0 || comparative == nil {
		return Neutral
	}
	var sum float64
	for _, h := range headlines {
		sum += comparative(h)
	}
	avg := sum / float64(len(headlines))
	return Round2(ToScale(avg, -1, 1))
}
