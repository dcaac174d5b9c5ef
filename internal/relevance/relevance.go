package relevance

import (
	"sort"
	"strings"
)

// Assessment is the outcome of evaluating one headline against the lexicon.
type Assessment struct {
	Relevant     bool     `json:"relevant"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
	ExcludedTerm string   `json:"excluded_term,omitempty"`
}

// exclusionTerms short-circuit a headline to not-relevant. Order matters only
// for which term gets reported; any hit excludes.
var exclusionTerms = []string{
	"recipe",
	"horoscope",
	"celebrity gossip",
	"red carpet",
	"box office",
	"movie trailer",
	"fashion week",
	"royal family",
	"lottery",
	"touchdown",
	"halftime",
	"season finale",
	"viral video",
}

// inclusionWeights maps market-relevant terms to their contribution. A term
// contributes its full weight once per headline, by presence.
var inclusionWeights = map[string]float64{
	"interest rate":   3,
	"federal reserve": 3,
	"central bank":    3,
	"rate cut":        3,
	"rate hike":       3,
	"inflation":       3,
	"recession":       3,
	"fed":             2,
	"stock":           2,
	"market":          2,
	"earnings":        2,
	"gdp":             2,
	"unemployment":    2,
	"tariff":          2,
	"treasury":        2,
	"bond":            2,
	"economy":         2,
	"wall street":     2,
	"oil price":       2,
	"layoff":          2,
	"bankruptcy":      2,
	"dollar":          1,
	"ipo":             1,
	"merger":          1,
	"sanction":        1,
	"crypto":          1,
	"housing":         1,
}

// Evaluate scores a headline against the lexicon. Exclusion takes precedence:
// if any exclusion term matches, the headline is not relevant regardless of
// inclusion weight.
func Evaluate(text string) Assessment {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, term := range exclusionTerms {
		if strings.Contains(normalized, term) {
			return Assessment{
				Relevant:     false,
				Score:        0,
				MatchedTerms: []string{},
				ExcludedTerm: term,
			}
		}
	}

	a := Assessment{MatchedTerms: []string{}}
	for term, weight := range inclusionWeights {
		if strings.Contains(normalized, term) {
			a.Score += weight
			a.MatchedTerms = append(a.MatchedTerms, term)
		}
	}
	sort.Strings(a.MatchedTerms)
	a.Relevant = a.Score > 0
	return a
}
