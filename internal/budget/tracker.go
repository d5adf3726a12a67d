package budget

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Reasons a Decision can deny generation.
const (
	ReasonDailyExceeded   = "daily_budget_exceeded"
	ReasonMonthlyExceeded = "monthly_budget_exceeded"
)

// alertRatio is the share of a budget at which Alerts starts reporting.
const alertRatio = 0.9

const (
	dailyRetention   = 48 * time.Hour
	monthlyRetention = 62 * 24 * time.Hour
)

// Config holds spending limits in dollars.
type Config struct {
	Daily            float64
	Monthly          float64
	MaxCostPerLesson float64
	PricePer1KTokens float64
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		Daily:            50,
		Monthly:          200,
		MaxCostPerLesson: 0.05,
		PricePer1KTokens: 0.015,
	}
}

// Decision is the outcome of Tracker.Allow.
type Decision struct {
	Allowed          bool    `json:"allowed"`
	Reason           string  `json:"reason,omitempty"`
	DailyRemaining   float64 `json:"daily_remaining"`
	MonthlyRemaining float64 `json:"monthly_remaining"`
}

// Alert reports a budget that is close to or past its limit.
type Alert struct {
	Period string  `json:"period"`
	Spent  float64 `json:"spent"`
	Limit  float64 `json:"limit"`
	Ratio  float64 `json:"ratio"`
}

// DaySpend is one entry of a spending breakdown.
type DaySpend struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// Summary describes spending over the last few days.
type Summary struct {
	Days      int        `json:"days"`
	Total     float64    `json:"total"`
	Average   float64    `json:"average"`
	Breakdown []DaySpend `json:"breakdown"`
	Limits    Config     `json:"limits"`
}

// Tracker accumulates generation cost. It is safe for concurrent use.
type Tracker struct {
	cfg      Config
	counters *gocache.Cache
	mu       sync.Mutex
	logger   *slog.Logger
}

// NewTracker creates a Tracker. Non-positive limits take their defaults.
func NewTracker(cfg Config, logger *slog.Logger) *Tracker {
	def := DefaultConfig()
	if cfg.Daily <= 0 {
		cfg.Daily = def.Daily
	}
	if cfg.Monthly <= 0 {
		cfg.Monthly = def.Monthly
	}
	if cfg.MaxCostPerLesson <= 0 {
		cfg.MaxCostPerLesson = def.MaxCostPerLesson
	}
	if cfg.PricePer1KTokens < 0 {
		cfg.PricePer1KTokens = def.PricePer1KTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		cfg:      cfg,
		counters: gocache.New(dailyRetention, time.Hour),
		logger:   logger.With("component", "budget_tracker"),
	}
}

// Config returns the limits in effect.
func (t *Tracker) Config() Config {
	return t.cfg
}

func dailyKey(now time.Time) string {
	return "cost:daily:" + now.UTC().Format(time.DateOnly)
}

func monthlyKey(now time.Time) string {
	return "cost:monthly:" + now.UTC().Format("2006-01")
}

func (t *Tracker) get(key string) float64 {
	if v, ok := t.counters.Get(key); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// Spent returns the spend for the day and month containing now.
func (t *Tracker) Spent(now time.Time) (daily, monthly float64) {
	return t.get(dailyKey(now)), t.get(monthlyKey(now))
}

// Allow reports whether another generation may be paid for at now.
func (t *Tracker) Allow(now time.Time) Decision {
	daily, monthly := t.Spent(now)
	d := Decision{
		Allowed:          true,
		DailyRemaining:   t.cfg.Daily - daily,
		MonthlyRemaining: t.cfg.Monthly - monthly,
	}
	switch {
	case daily >= t.cfg.Daily:
		d.Allowed = false
		d.Reason = ReasonDailyExceeded
	case monthly >= t.cfg.Monthly:
		d.Allowed = false
		d.Reason = ReasonMonthlyExceeded
	}
	return d
}

// Cost converts output tokens to dollars.
func (t *Tracker) Cost(tokens int) float64 {
	if tokens <= 0 {
		return 0
	}
	return float64(tokens) / 1000 * t.cfg.PricePer1KTokens
}

// Record adds the cost of tokens to the counters for now and returns it.
func (t *Tracker) Record(now time.Time, tokens int) float64 {
	cost := t.Cost(tokens)
	if cost == 0 {
		return 0
	}
	if cost > t.cfg.MaxCostPerLesson {
		t.logger.Warn("lesson cost exceeds per-lesson limit",
			"cost", cost,
			"limit", t.cfg.MaxCostPerLesson,
			"tokens", tokens)
	}

	t.mu.Lock()
	t.add(dailyKey(now), cost, dailyRetention)
	t.add(monthlyKey(now), cost, monthlyRetention)
	t.mu.Unlock()

	t.logger.Debug("recorded generation cost", "cost", fmt.Sprintf("%.4f", cost), "tokens", tokens)
	return cost
}

func (t *Tracker) add(key string, cost float64, retention time.Duration) {
	if _, err := t.counters.IncrementFloat64(key, cost); err != nil {
		t.counters.Set(key, cost, retention)
	}
}

// Alerts lists budgets at or above 90% of their limit.
func (t *Tracker) Alerts(now time.Time) []Alert {
	daily, monthly := t.Spent(now)
	var alerts []Alert
	if r := daily / t.cfg.Daily; r >= alertRatio {
		alerts = append(alerts, Alert{Period: "daily", Spent: daily, Limit: t.cfg.Daily, Ratio: r})
	}
	if r := monthly / t.cfg.Monthly; r >= alertRatio {
		alerts = append(alerts, Alert{Period: "monthly", Spent: monthly, Limit: t.cfg.Monthly, Ratio: r})
	}
	return alerts
}

// Summary reports daily spend for the days days ending at now, oldest first.
// Only days still retained in memory can have non-zero cost.
func (t *Tracker) Summary(now time.Time, days int) Summary {
	if days <= 0 {
		days = 1
	}
	s := Summary{Days: days, Limits: t.cfg, Breakdown: make([]DaySpend, 0, days)}
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		cost := t.get(dailyKey(day))
		s.Breakdown = append(s.Breakdown, DaySpend{Date: day.UTC().Format(time.DateOnly), Cost: cost})
		s.Total += cost
	}
	s.Average = s.Total / float64(days)
	return s
}
