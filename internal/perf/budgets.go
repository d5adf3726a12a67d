package perf

import (
	"math"
	"time"
)

// BudgetWindow is how far back CheckBudgets looks.
const BudgetWindow = 5 * time.Minute

// BudgetCheck is the compliance of one metric against its budget.
type BudgetCheck struct {
	Name        string  `json:"name"`
	ThresholdMs float64 `json:"threshold_ms"`
	AverageMs   float64 `json:"average_ms"`
	Samples     int     `json:"samples"`
	MarginMs    float64 `json:"margin_ms"`
	Compliant   bool    `json:"compliant"`
}

// BudgetReport covers every metric with a defined budget.
type BudgetReport struct {
	Window    string        `json:"window"`
	Compliant bool          `json:"compliant"`
	Checks    []BudgetCheck `json:"checks"`
}

// CheckBudgets compares the average of recent samples with each budget.
// Metrics with no recent samples are reported as compliant.
func (m *Monitor) CheckBudgets() BudgetReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-BudgetWindow)
	report := BudgetReport{Window: BudgetWindow.String(), Compliant: true}
	for _, name := range m.budgetedNames() {
		limit := m.thresholds[name]
		var recent []Sample
		if buf, ok := m.buffers[name]; ok {
			recent = buf.since(cutoff)
		}
		avg := average(recent)
		check := BudgetCheck{
			Name:        name,
			ThresholdMs: toMs(limit),
			AverageMs:   avg,
			Samples:     len(recent),
			MarginMs:    toMs(limit) - avg,
			Compliant:   avg <= toMs(limit),
		}
		if !check.Compliant {
			report.Compliant = false
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}

// budgetedNames returns kinds then stages that have a threshold.
func (m *Monitor) budgetedNames() []string {
	names := make([]string, 0, len(m.thresholds))
	for _, k := range Kinds {
		if _, ok := m.thresholds[string(k)]; ok {
			names = append(names, string(k))
		}
	}
	for _, s := range Stages {
		if _, ok := m.thresholds[string(s)]; ok {
			names = append(names, string(s))
		}
	}
	return names
}

// Trend directions.
const (
	TrendImproving = "improving"
	TrendDegrading = "degrading"
	TrendStable    = "stable"
)

// stableBand is the relative change treated as noise.
const stableBand = 0.10

// Trend compares the first and second half of a window.
type Trend struct {
	Name         string  `json:"name"`
	Samples      int     `json:"samples"`
	FirstHalfMs  float64 `json:"first_half_ms"`
	SecondHalfMs float64 `json:"second_half_ms"`
	ChangePct    float64 `json:"change_pct"`
	Direction    string  `json:"direction"`
}

// Trends reports how latency moved over the last window for every metric
// with samples in it.
func (m *Monitor) Trends(window time.Duration) []Trend {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	start := now.Add(-window)
	mid := now.Add(-window / 2)

	var trends []Trend
	names := make([]string, 0, len(Kinds)+len(Stages))
	for _, k := range Kinds {
		names = append(names, string(k))
	}
	for _, s := range Stages {
		names = append(names, string(s))
	}
	for _, name := range names {
		buf, ok := m.buffers[name]
		if !ok {
			continue
		}
		recent := buf.since(start)
		if len(recent) == 0 {
			continue
		}
		var first, second []Sample
		for _, s := range recent {
			if s.At.Before(mid) {
				first = append(first, s)
			} else {
				second = append(second, s)
			}
		}
		t := Trend{
			Name:         name,
			Samples:      len(recent),
			FirstHalfMs:  average(first),
			SecondHalfMs: average(second),
			Direction:    TrendStable,
		}
		if len(first) > 0 && len(second) > 0 && t.FirstHalfMs > 0 {
			change := (t.SecondHalfMs - t.FirstHalfMs) / t.FirstHalfMs
			t.ChangePct = math.Round(change*1000) / 10
			switch {
			case change > stableBand:
				t.Direction = TrendDegrading
			case change < -stableBand:
				t.Direction = TrendImproving
			}
		}
		trends = append(trends, t)
	}
	return trends
}
