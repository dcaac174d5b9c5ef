package scoring

import "strings"

// investorLexicon maps financial terms to their per-headline contribution.
// Positive terms read as bullish, negative as bearish.
var investorLexicon = map[string]float64{
	"rally": 1, "surge": 1, "soar": 1, "boom": 1, "record high": 1,
	"beat expectations": 1, "upgrade": 1, "bullish": 1, "rebound": 1,
	"growth": 1, "profit": 1, "gain": 1, "recovery": 1, "stimulus": 1,
	"rate cut": 1, "dividend": 1, "buyback": 1,

	"crash": -1, "plunge": -1, "slump": -1, "selloff": -1, "sell-off": -1,
	"recession": -1, "default": -1, "downgrade": -1, "bearish": -1,
	"bankruptcy": -1, "layoff": -1, "miss expectations": -1, "tumble": -1,
	"inflation": -1, "rate hike": -1, "tariff": -1, "crisis": -1,
	"record low": -1, "loss": -1,
}

// InvestorResult carries the mapped score plus per-term frequency counts for
// transparency.
type InvestorResult struct {
	Score      float64        `json:"score"`
	TermCounts map[string]int `json:"term_counts"`
}

// InvestorSentiment computes the average net lexicon score per headline
// (presence-based, one contribution per term per headline) and maps it from
// [-4, 4] onto 0..10.
func InvestorSentiment(headlines []string) InvestorResult {
	counts := make(map[string]int)
	if len(headlines) == 0 {
		return InvestorResult{Score: Neutral, TermCounts: counts}
	}

	var total float64
	for _, h := range headlines {
		normalized := strings.ToLower(h)
		var net float64
		for term, weight := range investorLexicon {
			if strings.Contains(normalized, term) {
				net += weight
				counts[term]++
			}
		}
		total += net
	}
	avg := total / float64(len(headlines))
	return InvestorResult{
		Score:      Round2(ToScale(avg, -4, 4)),
		TermCounts: counts,
	}
}
