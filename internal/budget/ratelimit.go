package budget

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Reasons a Result can deny a request.
const (
	ReasonMinuteExceeded = "minute_limit_exceeded"
	ReasonHourExceeded   = "hour_limit_exceeded"
	ReasonDayExceeded    = "day_limit_exceeded"
)

// Limits caps requests per window.
type Limits struct {
	PerMinute int `json:"per_minute"`
	PerHour   int `json:"per_hour"`
	PerDay    int `json:"per_day"`
}

// DefaultLimits returns the limits for ordinary clients.
func DefaultLimits() Limits {
	return Limits{PerMinute: 60, PerHour: 1000, PerDay: 10000}
}

// Client tiers, selected by client ID prefix.
var (
	premiumLimits    = Limits{PerMinute: 120, PerHour: 2000, PerDay: 20000}
	enterpriseLimits = Limits{PerMinute: 300, PerHour: 5000, PerDay: 50000}
)

// Result is the outcome of RateLimiter.Check.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string
	Remaining  int
}

type window struct {
	name   string
	size   time.Duration
	limit  func(Limits) int
	reason string
}

var windows = []window{
	{name: "minute", size: time.Minute, limit: func(l Limits) int { return l.PerMinute }, reason: ReasonMinuteExceeded},
	{name: "hour", size: time.Hour, limit: func(l Limits) int { return l.PerHour }, reason: ReasonHourExceeded},
	{name: "day", size: 24 * time.Hour, limit: func(l Limits) int { return l.PerDay }, reason: ReasonDayExceeded},
}

// RateLimiter counts requests per client in fixed minute, hour and day
// windows. Denied requests are not counted. It is safe for concurrent use.
type RateLimiter struct {
	limits   Limits
	counters *gocache.Cache
	mu       sync.Mutex
}

// NewRateLimiter creates a RateLimiter. Non-positive limits take their defaults.
func NewRateLimiter(limits Limits) *RateLimiter {
	def := DefaultLimits()
	if limits.PerMinute <= 0 {
		limits.PerMinute = def.PerMinute
	}
	if limits.PerHour <= 0 {
		limits.PerHour = def.PerHour
	}
	if limits.PerDay <= 0 {
		limits.PerDay = def.PerDay
	}
	return &RateLimiter{
		limits:   limits,
		counters: gocache.New(24*time.Hour, 10*time.Minute),
	}
}

// LimitsFor returns the limits that apply to client.
func (r *RateLimiter) LimitsFor(client string) Limits {
	switch {
	case strings.HasPrefix(client, "enterprise_"):
		return enterpriseLimits
	case strings.HasPrefix(client, "premium_"):
		return premiumLimits
	default:
		return r.limits
	}
}

func windowKey(client string, w window, now time.Time) string {
	return fmt.Sprintf("rate:%s:%s:%d", client, w.name, now.UnixMilli()/w.size.Milliseconds())
}

// Check counts a request from client at now and reports whether it is allowed.
func (r *RateLimiter) Check(client string, now time.Time) Result {
	limits := r.LimitsFor(client)

	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := -1
	for _, w := range windows {
		count := 0
		if v, ok := r.counters.Get(windowKey(client, w, now)); ok {
			count = v.(int)
		}
		limit := w.limit(limits)
		if count >= limit {
			return Result{
				Allowed:    false,
				RetryAfter: w.size - now.Sub(now.Truncate(w.size)),
				Reason:     w.reason,
			}
		}
		if left := limit - count - 1; remaining < 0 || left < remaining {
			remaining = left
		}
	}

	for _, w := range windows {
		key := windowKey(client, w, now)
		if _, err := r.counters.IncrementInt(key, 1); err != nil {
			r.counters.Set(key, 1, w.size)
		}
	}
	return Result{Allowed: true, Remaining: remaining}
}
