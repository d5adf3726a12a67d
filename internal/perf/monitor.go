package perf

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Alert is raised when a sample exceeds its budget.
type Alert struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DurationMs  float64   `json:"duration_ms"`
	ThresholdMs float64   `json:"threshold_ms"`
	At          time.Time `json:"at"`
}

// Monitor collects samples in bounded buffers. It is safe for concurrent use.
type Monitor struct {
	mu         sync.Mutex
	logger     *slog.Logger
	now        func() time.Time
	thresholds map[string]time.Duration
	capacity   int
	errorCap   int
	alertCap   int

	buffers map[string]*ring
	// totals counts every sample recorded since the last reset, per name.
	// Buffers only keep the most recent samples.
	totals  map[string]int
	alerts  []Alert
	started time.Time
	stopped bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithThresholds overrides individual budgets; unspecified names keep their defaults.
func WithThresholds(thresholds map[string]time.Duration) Option {
	return func(m *Monitor) {
		for name, d := range thresholds {
			m.thresholds[name] = d
		}
	}
}

// WithCapacity sets the per-kind buffer size.
func WithCapacity(capacity int) Option {
	return func(m *Monitor) {
		if capacity > 0 {
			m.capacity = capacity
		}
	}
}

// NewMonitor creates an initialized Monitor. A nil logger uses slog.Default().
func NewMonitor(logger *slog.Logger, opts ...Option) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{
		logger:     logger.With("component", "performance_monitor"),
		now:        time.Now,
		thresholds: DefaultThresholds(),
		capacity:   DefaultCapacity,
		errorCap:   DefaultErrorCapacity,
		alertCap:   DefaultAlertCapacity,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Init()
	return m
}

// Init (re)allocates the buffers and starts accepting samples.
func (m *Monitor) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.stopped = false
}

// Reset discards every sample and alert.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

// Shutdown stops recording. Reads keep working on the retained data.
func (m *Monitor) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *Monitor) resetLocked() {
	m.buffers = make(map[string]*ring, len(Kinds)+len(Stages))
	for _, k := range Kinds {
		capacity := m.capacity
		if k == KindError && m.errorCap < capacity {
			capacity = m.errorCap
		}
		m.buffers[string(k)] = newRing(capacity)
	}
	for _, s := range Stages {
		m.buffers[string(s)] = newRing(m.capacity)
	}
	m.totals = make(map[string]int, len(Kinds)+len(Stages))
	m.alerts = nil
	m.started = m.now()
}

// Record stores a request-level sample.
func (m *Monitor) Record(kind Kind, d time.Duration, metadata map[string]string) {
	m.record(string(kind), d, metadata)
}

// RecordStage stores the duration of one pipeline stage.
func (m *Monitor) RecordStage(stage Stage, d time.Duration) {
	m.record(string(stage), d, nil)
}

func (m *Monitor) record(name string, d time.Duration, metadata map[string]string) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	at := m.now()
	buf, ok := m.buffers[name]
	if !ok {
		buf = newRing(m.capacity)
		m.buffers[name] = buf
	}
	buf.push(Sample{Name: name, Duration: d, At: at, Metadata: metadata})
	m.totals[name]++

	var alert *Alert
	if limit, ok := m.thresholds[name]; ok && d > limit {
		a := Alert{
			ID:          uuid.NewString(),
			Name:        name,
			DurationMs:  toMs(d),
			ThresholdMs: toMs(limit),
			At:          at,
		}
		m.alerts = append(m.alerts, a)
		if len(m.alerts) > m.alertCap {
			m.alerts = m.alerts[len(m.alerts)-m.alertCap:]
		}
		alert = &a
	}
	m.mu.Unlock()

	if alert != nil {
		m.logger.Warn("performance budget exceeded",
			"metric", alert.Name,
			"duration_ms", alert.DurationMs,
			"threshold_ms", alert.ThresholdMs,
			"alert_id", alert.ID)
	}
}

// Alerts returns the retained alerts, oldest first.
func (m *Monitor) Alerts() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Alert(nil), m.alerts...)
}

// Threshold returns the budget for name and whether one is defined.
func (m *Monitor) Threshold(name string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.thresholds[name]
	return d, ok
}

// Summary aggregates the samples of one kind or stage.
type Summary struct {
	Count     int     `json:"count"`
	AverageMs float64 `json:"average_ms"`
	MinMs     float64 `json:"min_ms"`
	MaxMs     float64 `json:"max_ms"`
	P95Ms     float64 `json:"p95_ms"`
}

// Stats is a point-in-time view of the monitor.
type Stats struct {
	TotalRequests      int                `json:"total_requests"`
	Syntheses          int                `json:"syntheses"`
	CacheHits          int                `json:"cache_hits"`
	CacheMisses        int                `json:"cache_misses"`
	Errors             int                `json:"errors"`
	CacheHitRate       float64            `json:"cache_hit_rate"`
	AverageSynthesisMs float64            `json:"average_synthesis_ms"`
	AverageCacheHitMs  float64            `json:"average_cache_hit_ms"`
	Metrics            map[string]Summary `json:"metrics"`
	Alerts             int                `json:"alerts"`
	UptimeSeconds      float64            `json:"uptime_seconds"`
}

// Stats reports lifetime counts since the last reset. Averages and
// percentiles cover the retained samples only.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{
		Metrics:       make(map[string]Summary, len(m.buffers)),
		Alerts:        len(m.alerts),
		UptimeSeconds: m.now().Sub(m.started).Seconds(),
	}
	for name, buf := range m.buffers {
		stats.Metrics[name] = summarize(buf.snapshot())
	}

	stats.Syntheses = m.totals[string(KindSynthesis)]
	stats.CacheHits = m.totals[string(KindCacheHit)]
	stats.CacheMisses = m.totals[string(KindCacheMiss)]
	stats.Errors = m.totals[string(KindError)]
	stats.TotalRequests = stats.Syntheses + stats.CacheHits + stats.Errors
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		stats.CacheHitRate = float64(stats.CacheHits) / float64(lookups)
	}
	stats.AverageSynthesisMs = stats.Metrics[string(KindSynthesis)].AverageMs
	stats.AverageCacheHitMs = stats.Metrics[string(KindCacheHit)].AverageMs
	return stats
}

func summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	durations := make([]float64, len(samples))
	var total float64
	for i, s := range samples {
		durations[i] = toMs(s.Duration)
		total += durations[i]
	}
	sort.Float64s(durations)
	idx := int(math.Ceil(0.95*float64(len(durations)))) - 1
	if idx < 0 {
		idx = 0
	}
	return Summary{
		Count:     len(samples),
		AverageMs: total / float64(len(samples)),
		MinMs:     durations[0],
		MaxMs:     durations[len(durations)-1],
		P95Ms:     durations[idx],
	}
}

func average(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range samples {
		total += toMs(s.Duration)
	}
	return total / float64(len(samples))
}

func toMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
