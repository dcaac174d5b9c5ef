// Package dates turns user-supplied date strings into concrete days and
// month ranges before any provider call is made.
package dates

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// dayLayouts are tried before the natural-language parser so unambiguous
// machine formats never depend on rule matching.
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ParseDay parses any reasonable date string, including natural language
// like "yesterday", against the given reference time. The result is
// truncated to the calendar day in UTC.
func ParseDay(s string, now time.Time) (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}

	r, err := parser.Parse(s, now)
	if err == nil && r != nil {
		return truncateDay(r.Time), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// ParseMonth parses a YYYY-MM string into the first instant of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed month %q (want YYYY-MM)", s)
	}
	return t, nil
}

// MonthsBetween returns the first-of-month sequence from start through end
// inclusive. A start after end yields an empty range.
func MonthsBetween(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// MonthSpan returns the first and last calendar day of the month containing m.
func MonthSpan(m time.Time) (time.Time, time.Time) {
	first := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
