package analysis

import (
	"newspulse/internal/budget"
	"newspulse/internal/scoring"
)

// FilterStats summarizes the relevance pass over one window.
type FilterStats struct {
	Total         int     `json:"total"`
	Relevant      int     `json:"relevant"`
	RelevanceRate float64 `json:"relevance_rate"`
}

// LeaningSummary aggregates the sampled headlines of one leaning bucket.
type LeaningSummary struct {
	GeneralSentiment  float64  `json:"general_sentiment"`
	InvestorSentiment float64  `json:"investor_sentiment"`
	HeadlineCount     int      `json:"headline_count"`
	SampleHeadlines   []string `json:"sample_headlines"`
}

// SamplingDiagnostics records how balanced sampling behaved.
type SamplingDiagnostics struct {
	MaxHeadlines        int `json:"max_headlines"`
	PerSourceQuota      int `json:"per_source_quota"`
	SourcesWithRelevant int `json:"sources_with_relevant"`
	SampledHeadlines    int `json:"sampled_headlines"`
}

// Diagnostics packages the budget and sampling state a caller needs to
// understand the result.
type Diagnostics struct {
	TokenBudget   budget.CheckResult  `json:"token_budget"`
	Sampling      SamplingDiagnostics `json:"sampling"`
	RequestsToday int                 `json:"requests_today"`
}

// Report is the result of analyzing one window (a day, or a month's span).
// Created fresh per invocation and never persisted.
type Report struct {
	Window              string                    `json:"window"`
	Start               string                    `json:"start"`
	End                 string                    `json:"end"`
	Filter              FilterStats               `json:"filter"`
	SourceDistribution  map[string]int            `json:"source_distribution"`
	LeaningDistribution map[string]int            `json:"leaning_distribution"`
	Scores              scoring.Dimensions        `json:"scores"`
	InvestorTerms       map[string]int            `json:"investor_terms"`
	Leanings            map[string]LeaningSummary `json:"leanings"`
	SampledHeadlines    []string                  `json:"sampled_headlines"`
	TrendingTerms       []string                  `json:"trending_terms,omitempty"`
	Diagnostics         Diagnostics               `json:"diagnostics"`
}

// MonthEntry is one month's slot in a range analysis. A failed month carries
// its error as data so the rest of the range still completes.
type MonthEntry struct {
	Month  string  `json:"month"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// MonthRangeReport aggregates per-month entries over an inclusive range.
type MonthRangeReport struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Months []MonthEntry `json:"months"`
}
