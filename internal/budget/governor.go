// Package budget answers "can we afford this operation" before any provider
// call is made, and keeps the month-to-date token ledger it answers from.
package budget

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status is the governor's decision at one point in time.
type Status string

const (
	StatusAllowed   Status = "allowed"
	StatusThrottled Status = "throttled"
	StatusBlocked   Status = "blocked"
)

// Config is the static budget policy.
type Config struct {
	MonthlyAllowance     int     `yaml:"monthly_allowance"`
	SoftCapPct           float64 `yaml:"soft_cap_pct"`
	HardCapPct           float64 `yaml:"hard_cap_pct"`
	AllowOverage         bool    `yaml:"allow_overage"`
	HistoricalMultiplier int     `yaml:"historical_multiplier"`
	RecentWindowDays     int     `yaml:"recent_window_days"`
}

func (c Config) withDefaults() Config {
	if c.MonthlyAllowance <= 0 {
		c.MonthlyAllowance = 500
	}
	if c.SoftCapPct <= 0 {
		c.SoftCapPct = 70
	}
	if c.HardCapPct <= 0 {
		c.HardCapPct = 90
	}
	if c.HistoricalMultiplier <= 0 {
		c.HistoricalMultiplier = 5
	}
	if c.RecentWindowDays <= 0 {
		c.RecentWindowDays = 30
	}
	return c
}

// CheckResult reports one ledger decision. A result with Allowed=true means
// the estimate was reserved against the month-to-date counter; the call is
// not idempotent.
type CheckResult struct {
	Allowed          bool    `json:"allowed"`
	Status           Status  `json:"status"`
	MTDTokens        int     `json:"mtd_tokens"`
	MonthlyAllowance int     `json:"monthly_allowance"`
	SoftCapPct       float64 `json:"soft_cap_pct"`
	HardCapPct       float64 `json:"hard_cap_pct"`
}

// ExhaustedError is the typed resource-exhausted condition raised when the
// governor blocks an operation. Callers must be able to tell it apart from
// network and provider failures.
type ExhaustedError struct {
	Estimate         int
	MTDTokens        int
	MonthlyAllowance int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("token budget exhausted: estimate %d would push month-to-date %d past allowance %d",
		e.Estimate, e.MTDTokens, e.MonthlyAllowance)
}

// Governor owns the month-to-date ledger. It is an injectable service, not a
// package singleton, so tests construct isolated instances and control the
// clock. Ledger mutations are mutex-guarded: CheckAndReserve and RecordActual
// may be reached from concurrent tool invocations.
type Governor struct {
	mu       sync.Mutex
	cfg      Config
	now      func() time.Time
	log      zerolog.Logger
	monthKey string
	mtd      int
}

// NewGovernor builds a governor. A nil clock falls back to time.Now.
func NewGovernor(cfg Config, now func() time.Time, log zerolog.Logger) *Governor {
	if now == nil {
		now = time.Now
	}
	g := &Governor{cfg: cfg.withDefaults(), now: now, log: log}
	g.monthKey = g.now().Format("2006-01")
	return g
}

// AllowOverage reports the static overage policy.
func (g *Governor) AllowOverage() bool {
	return g.cfg.AllowOverage
}

// rollMonth resets the ledger when the wall-clock month has changed.
// Callers must hold g.mu.
func (g *Governor) rollMonth() {
	key := g.now().Format("2006-01")
	if key != g.monthKey {
		g.log.Info().Str("from", g.monthKey).Str("to", key).Int("mtd", g.mtd).
			Msg("budget month rollover, resetting ledger")
		g.monthKey = key
		g.mtd = 0
	}
}

// Estimate prices an operation before it runs. Windows whose start and end
// both lie within the recent horizon cost one unit per planned page.
// Historical windows cost multiplier × distinct calendar years spanned per
// page, counting inclusively: a range that crosses a year boundary pays for
// both years.
func (g *Governor) Estimate(start, end time.Time, pagesPlanned int) int {
	if pagesPlanned <= 0 {
		return 0
	}
	horizon := g.now().AddDate(0, 0, -g.cfg.RecentWindowDays)
	if !start.Before(horizon) && !end.Before(horizon) {
		return pagesPlanned
	}
	years := end.Year() - start.Year() + 1
	if years < 1 {
		years = 1
	}
	return g.cfg.HistoricalMultiplier * years * pagesPlanned
}

// CheckAndReserve gates an estimate against the soft and hard caps and, when
// allowed, reserves it (mtd += estimate). Hard-cap breach is advisory: the
// result is throttled-but-allowed unless the absolute monthly allowance
// itself would be exceeded without overage permission, in which case the call
// is blocked and the ledger is left untouched so a later retry can succeed
// after downward reconciliation.
func (g *Governor) CheckAndReserve(estimate int, allowOverage bool) CheckResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollMonth()

	projected := g.mtd + estimate
	soft := int(g.cfg.SoftCapPct / 100 * float64(g.cfg.MonthlyAllowance))
	hard := int(g.cfg.HardCapPct / 100 * float64(g.cfg.MonthlyAllowance))

	var status Status
	switch {
	case projected <= soft:
		status = StatusAllowed
	case projected <= hard:
		status = StatusThrottled
	case projected > g.cfg.MonthlyAllowance && !allowOverage:
		status = StatusBlocked
	default:
		status = StatusThrottled
	}

	if status != StatusBlocked {
		g.mtd = projected
	}

	res := CheckResult{
		Allowed:          status != StatusBlocked,
		Status:           status,
		MTDTokens:        g.mtd,
		MonthlyAllowance: g.cfg.MonthlyAllowance,
		SoftCapPct:       g.cfg.SoftCapPct,
		HardCapPct:       g.cfg.HardCapPct,
	}
	g.log.Debug().Int("estimate", estimate).Int("mtd", g.mtd).
		Str("status", string(status)).Msg("budget check")
	return res
}

// RecordActual reconciles estimate drift after the operation ran: the delta
// between actual and estimated usage is applied to the ledger, floored at
// zero. Fewer pages fetched than planned credits the difference back.
func (g *Governor) RecordActual(actual, estimated int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollMonth()

	g.mtd += actual - estimated
	if g.mtd < 0 {
		g.mtd = 0
	}
}

// Snapshot reads the ledger without reserving anything.
func (g *Governor) Snapshot() CheckResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rollMonth()

	return CheckResult{
		Allowed:          true,
		Status:           StatusAllowed,
		MTDTokens:        g.mtd,
		MonthlyAllowance: g.cfg.MonthlyAllowance,
		SoftCapPct:       g.cfg.SoftCapPct,
		HardCapPct:       g.cfg.HardCapPct,
	}
}
