package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newspulse/internal/analysis"
)

var (
	// Adaptive colors for dark/light terminals
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

func renderDayReport(r *analysis.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Headlines for %s", r.Start)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d fetched, %d relevant (%.1f%%)",
		r.Filter.Total, r.Filter.Relevant, r.Filter.RelevanceRate)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Scores"))
	b.WriteString("\n")
	writeScore(&b, "Attention", r.Scores.Attention)
	writeScore(&b, "Investor sentiment", r.Scores.InvestorSentiment)
	writeScore(&b, "General sentiment", r.Scores.GeneralSentiment)
	writeScore(&b, "Bias intensity", r.Scores.BiasIntensity)
	writeScore(&b, "Novelty", r.Scores.Novelty)
	writeScore(&b, "Volatility shock", r.Scores.VolShock)

	if len(r.LeaningDistribution) > 0 {
		b.WriteString(sectionStyle.Render("Leaning distribution"))
		b.WriteString("\n")
		writeCounts(&b, r.LeaningDistribution)
	}

	if len(r.Leanings) > 0 {
		b.WriteString(sectionStyle.Render("By leaning"))
		b.WriteString("\n")
		keys := make([]string, 0, len(r.Leanings))
		for k := range r.Leanings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s := r.Leanings[k]
			b.WriteString(fmt.Sprintf("  %s %d headlines, sentiment %.2f, investor %.2f\n",
				labelStyle.Render(k+":"), s.HeadlineCount, s.GeneralSentiment, s.InvestorSentiment))
			for _, h := range s.SampleHeadlines {
				b.WriteString(dimStyle.Render("    - " + h))
				b.WriteString("\n")
			}
		}
	}

	if len(r.TrendingTerms) > 0 {
		b.WriteString(sectionStyle.Render("Trending"))
		b.WriteString("\n")
		b.WriteString("  " + strings.Join(r.TrendingTerms, ", "))
		b.WriteString("\n")
	}

	d := r.Diagnostics
	b.WriteString(sectionStyle.Render("Budget"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s, %d/%d tokens month-to-date, %d requests today\n",
		labelStyle.Render("status:"), d.TokenBudget.Status,
		d.TokenBudget.MTDTokens, d.TokenBudget.MonthlyAllowance, d.RequestsToday))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  sampled %d of %d relevant across %d sources (quota %d)",
		d.Sampling.SampledHeadlines, r.Filter.Relevant,
		d.Sampling.SourcesWithRelevant, d.Sampling.PerSourceQuota)))

	return b.String()
}

func renderMonthRange(r *analysis.MonthRangeReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Monthly analysis %s .. %s", r.From, r.To)))
	b.WriteString("\n")

	if len(r.Months) == 0 {
		b.WriteString(dimStyle.Render("No months in range."))
		return b.String()
	}

	for _, m := range r.Months {
		b.WriteString(sectionStyle.Render(m.Month))
		b.WriteString("\n")
		if m.Error != "" {
			b.WriteString(dimStyle.Render("  failed: " + m.Error))
			b.WriteString("\n")
			continue
		}
		rep := m.Report
		b.WriteString(fmt.Sprintf("  %s %d fetched, %d relevant\n",
			labelStyle.Render("headlines:"), rep.Filter.Total, rep.Filter.Relevant))
		b.WriteString(fmt.Sprintf("  %s sentiment %.2f, investor %.2f, attention %.2f, bias %.2f\n",
			labelStyle.Render("scores:"),
			rep.Scores.GeneralSentiment, rep.Scores.InvestorSentiment,
			rep.Scores.Attention, rep.Scores.BiasIntensity))
		if len(rep.LeaningDistribution) > 0 {
			b.WriteString("  " + labelStyle.Render("leanings:"))
			b.WriteString(" " + countsLine(rep.LeaningDistribution))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeScore(b *strings.Builder, name string, v float64) {
	b.WriteString(fmt.Sprintf("  %s %.2f\n", labelStyle.Render(name+":"), v))
}

func writeCounts(b *strings.Builder, counts map[string]int) {
	b.WriteString("  " + countsLine(counts))
	b.WriteString("\n")
}

func countsLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
