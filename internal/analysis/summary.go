package analysis

import (
	"fmt"
	"strings"
)

// DaySummary renders a short human-readable text summary of one report.
func DaySummary(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "News analysis for %s: %d headlines scanned, %d relevant (%.2f%%).\n",
		r.Window, r.Filter.Total, r.Filter.Relevant, r.Filter.RelevanceRate)
	fmt.Fprintf(&b, "Scores (0-10): sentiment %.2f, investor %.2f, attention %.2f, bias %.2f, novelty %.2f, vol-shock %.2f.\n",
		r.Scores.GeneralSentiment, r.Scores.InvestorSentiment, r.Scores.Attention,
		r.Scores.BiasIntensity, r.Scores.Novelty, r.Scores.VolShock)

	for _, bucket := range []string{"left", "center", "right", "other"} {
		s, ok := r.Leanings[bucket]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %d sampled headlines, sentiment %.2f, investor %.2f.\n",
			bucket, s.HeadlineCount, s.GeneralSentiment, s.InvestorSentiment)
	}
	if len(r.TrendingTerms) > 0 {
		fmt.Fprintf(&b, "Trending: %s.\n", strings.Join(r.TrendingTerms, ", "))
	}
	fmt.Fprintf(&b, "Budget: %d/%d tokens used this month (%s).",
		r.Diagnostics.TokenBudget.MTDTokens, r.Diagnostics.TokenBudget.MonthlyAllowance,
		r.Diagnostics.TokenBudget.Status)
	return b.String()
}

// MonthRangeSummary renders a per-month digest of a range analysis.
func MonthRangeSummary(r *MonthRangeReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "News analysis for %s through %s (%d months):\n", r.From, r.To, len(r.Months))
	for _, entry := range r.Months {
		if entry.Error != "" {
			fmt.Fprintf(&b, "  %s: failed: %s\n", entry.Month, entry.Error)
			continue
		}
		rep := entry.Report
		fmt.Fprintf(&b, "  %s: %d headlines, %d relevant, sentiment %.2f, investor %.2f\n",
			entry.Month, rep.Filter.Total, rep.Filter.Relevant,
			rep.Scores.GeneralSentiment, rep.Scores.InvestorSentiment)
	}
	return strings.TrimRight(b.String(), "\n")
}
