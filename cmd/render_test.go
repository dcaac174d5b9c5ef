package cmd

import (
	"strings"
	"testing"

	"newspulse/internal/analysis"
)

func TestCountsLine(t *testing.T) {
	got := countsLine(map[string]int{"right": 2, "left": 5, "center": 1})
	want := "center 1, left 5, right 2"
	if got != want {
		t.Errorf("countsLine = %q, want %q", got, want)
	}
}

func TestRenderMonthRange(t *testing.T) {
	r := &analysis.MonthRangeReport{
		From: "2025-01",
		To:   "2025-02",
		Months: []analysis.MonthEntry{
			{Month: "2025-01", Report: &analysis.Report{
				Filter: analysis.FilterStats{Total: 10, Relevant: 6},
			}},
			{Month: "2025-02", Error: "resource exhausted"},
		},
	}

	out := renderMonthRange(r)
	for _, want := range []string{"2025-01", "2025-02", "10 fetched, 6 relevant", "failed: resource exhausted"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderMonthRange missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMonthRangeEmpty(t *testing.T) {
	out := renderMonthRange(&analysis.MonthRangeReport{From: "2025-03", To: "2025-01"})
	if !strings.Contains(out, "No months in range.") {
		t.Errorf("expected empty-range notice, got:\n%s", out)
	}
}
