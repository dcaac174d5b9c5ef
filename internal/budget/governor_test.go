package budget

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testGovernor(cfg Config, now time.Time) *Governor {
	return NewGovernor(cfg, func() time.Time { return now }, zerolog.Nop())
}

func TestEstimateSameDayWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGovernor(Config{}, now)

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	for pages := 1; pages <= 5; pages++ {
		if got := g.Estimate(today, today, pages); got != pages {
			t.Errorf("same-day estimate for %d pages = %d, want %d", pages, got, pages)
		}
	}
}

func TestEstimateRecentWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGovernor(Config{}, now)

	start := now.AddDate(0, 0, -10)
	end := now.AddDate(0, 0, -3)
	if got := g.Estimate(start, end, 3); got != 3 {
		t.Errorf("recent window estimate = %d, want 3", got)
	}
}

func TestEstimateHistoricalYearSpan(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGovernor(Config{HistoricalMultiplier: 5}, now)

	tests := []struct {
		start, end time.Time
		pages      int
		want       int
	}{
		// 2015..2017 = 3 calendar years, 1 page → 5*3*1 = 15.
		{time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC), 1, 15},
		// Single historical year.
		{time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC), 2, 10},
		// Crossing one year boundary counts both years.
		{time.Date(2021, 12, 20, 0, 0, 0, 0, time.UTC), time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC), 1, 10},
	}
	for _, tt := range tests {
		if got := g.Estimate(tt.start, tt.end, tt.pages); got != tt.want {
			t.Errorf("Estimate(%s..%s, %d pages) = %d, want %d",
				tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), tt.pages, got, tt.want)
		}
	}
}

func TestEstimateMixedWindowIsHistorical(t *testing.T) {
	// Start outside the horizon makes the whole window historical even if
	// the end is recent.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGovernor(Config{HistoricalMultiplier: 5}, now)

	start := now.AddDate(0, 0, -60)
	end := now.AddDate(0, 0, -1)
	if got := g.Estimate(start, end, 1); got != 5 {
		t.Errorf("mixed window estimate = %d, want 5", got)
	}
}

func TestEstimateZeroPages(t *testing.T) {
	g := testGovernor(Config{}, time.Now())
	if got := g.Estimate(time.Now(), time.Now(), 0); got != 0 {
		t.Errorf("zero pages should cost 0, got %d", got)
	}
}

func TestCheckAndReserveBands(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g := testGovernor(Config{MonthlyAllowance: 100, SoftCapPct: 70, HardCapPct: 90}, now)

	// Under soft cap.
	res := g.CheckAndReserve(50, false)
	if res.Status != StatusAllowed || !res.Allowed {
		t.Fatalf("under soft cap: %+v", res)
	}
	if res.MTDTokens != 50 {
		t.Fatalf("reservation not applied, mtd = %d", res.MTDTokens)
	}

	// Between soft and hard caps.
	res = g.CheckAndReserve(30, false)
	if res.Status != StatusThrottled || !res.Allowed {
		t.Fatalf("between caps: %+v", res)
	}
	if res.MTDTokens != 80 {
		t.Fatalf("mtd = %d, want 80", res.MTDTokens)
	}

	// Past hard cap but within the allowance: advisory throttle, still allowed.
	res = g.CheckAndReserve(15, false)
	if res.Status != StatusThrottled || !res.Allowed {
		t.Fatalf("past hard cap within allowance: %+v", res)
	}
	if res.MTDTokens != 95 {
		t.Fatalf("mtd = %d, want 95", res.MTDTokens)
	}

	// Past the allowance without overage: blocked, ledger untouched.
	res = g.CheckAndReserve(10, false)
	if res.Status != StatusBlocked || res.Allowed {
		t.Fatalf("past allowance: %+v", res)
	}
	if res.MTDTokens != 95 {
		t.Fatalf("blocked call mutated mtd to %d", res.MTDTokens)
	}

	// Same estimate with overage permitted: throttled but allowed.
	res = g.CheckAndReserve(10, true)
	if res.Status != StatusThrottled || !res.Allowed {
		t.Fatalf("overage permitted: %+v", res)
	}
	if res.MTDTokens != 105 {
		t.Fatalf("mtd = %d, want 105", res.MTDTokens)
	}
}

func TestCheckAndReserveBlockedIsRetryable(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g := testGovernor(Config{MonthlyAllowance: 100, SoftCapPct: 70, HardCapPct: 90}, now)

	g.CheckAndReserve(98, false)
	if res := g.CheckAndReserve(10, false); res.Allowed {
		t.Fatal("expected block")
	}

	// Downward reconciliation (fewer pages than planned) frees room.
	g.RecordActual(80, 98)
	if res := g.CheckAndReserve(10, false); !res.Allowed {
		t.Fatalf("retry after reconciliation should be allowed: %+v", res)
	}
}

func TestRecordActualFloorsAtZero(t *testing.T) {
	g := testGovernor(Config{MonthlyAllowance: 100}, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	g.CheckAndReserve(5, false)
	g.RecordActual(0, 50)
	if got := g.Snapshot().MTDTokens; got != 0 {
		t.Errorf("mtd should floor at 0, got %d", got)
	}
}

func TestMonthRollover(t *testing.T) {
	current := time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)
	g := NewGovernor(Config{MonthlyAllowance: 100}, func() time.Time { return current }, zerolog.Nop())

	g.CheckAndReserve(60, false)
	if got := g.Snapshot().MTDTokens; got != 60 {
		t.Fatalf("mtd = %d, want 60", got)
	}

	current = time.Date(2025, 7, 1, 0, 30, 0, 0, time.UTC)
	if got := g.Snapshot().MTDTokens; got != 0 {
		t.Errorf("mtd should reset on month rollover, got %d", got)
	}
}

func TestRateCounter(t *testing.T) {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewRateCounter(RateLimits{PerSecond: 2, PerDay: 3}, func() time.Time { return current })

	if !c.Allow() {
		t.Fatal("fresh counter should allow")
	}
	c.Record(2)
	if c.Allow() {
		t.Error("per-second cap should deny")
	}

	current = current.Add(time.Second)
	if !c.Allow() {
		t.Error("next second should allow again")
	}
	c.Record(1)
	if c.Allow() {
		t.Error("per-day cap should deny")
	}
	if c.Today() != 3 {
		t.Errorf("Today = %d, want 3", c.Today())
	}

	current = current.Add(24 * time.Hour)
	if !c.Allow() {
		t.Error("next day should allow again")
	}
	if c.Today() != 0 {
		t.Errorf("Today after rollover = %d, want 0", c.Today())
	}
}
