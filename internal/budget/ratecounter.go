package budget

import (
	"sync"
	"time"
)

// RateLimits caps how many provider requests may be issued per second and
// per day.
type RateLimits struct {
	PerSecond int `yaml:"per_second"`
	PerDay    int `yaml:"per_day"`
}

func (l RateLimits) withDefaults() RateLimits {
	if l.PerSecond <= 0 {
		l.PerSecond = 1
	}
	if l.PerDay <= 0 {
		l.PerDay = 80
	}
	return l
}

// RateCounter tracks provider request counts in rolling one-second and
// calendar-day windows. Like the governor it is an injectable service with
// an injected clock.
type RateCounter struct {
	mu     sync.Mutex
	limits RateLimits
	now    func() time.Time

	secondKey   int64
	secondCount int
	dayKey      string
	dayCount    int
}

// NewRateCounter builds a counter. A nil clock falls back to time.Now.
func NewRateCounter(limits RateLimits, now func() time.Time) *RateCounter {
	if now == nil {
		now = time.Now
	}
	return &RateCounter{limits: limits.withDefaults(), now: now}
}

// roll advances the windows. Callers must hold c.mu.
func (c *RateCounter) roll() {
	t := c.now()
	if sec := t.Unix(); sec != c.secondKey {
		c.secondKey = sec
		c.secondCount = 0
	}
	if day := t.Format("2006-01-02"); day != c.dayKey {
		c.dayKey = day
		c.dayCount = 0
	}
}

// Allow reports whether one more request fits under both caps. It does not
// record anything; pair it with Record once the request is issued.
func (c *RateCounter) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll()
	return c.secondCount < c.limits.PerSecond && c.dayCount < c.limits.PerDay
}

// Record adds n issued requests to both windows.
func (c *RateCounter) Record(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll()
	c.secondCount += n
	c.dayCount += n
}

// Today returns the number of requests recorded against the current day.
func (c *RateCounter) Today() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll()
	return c.dayCount
}
