package perf

import "time"

// minHealthyHitRate is the cache hit rate below which warming is recommended.
const minHealthyHitRate = 0.8

// Recommendation texts.
const (
	RecommendOptimizeSynthesis = "optimize synthesis pipeline: average synthesis time exceeds budget"
	RecommendWarmCache         = "increase cache size or warm cache: hit rate is below 80%"
	RecommendInvestigateErrors = "investigate synthesis errors: fallback lessons were served"
	RecommendOptimizeCache     = "optimize cache lookups: average cache hit time exceeds budget"
)

// Report bundles everything observability tooling needs in one read.
type Report struct {
	GeneratedAt     time.Time    `json:"generated_at"`
	Stats           Stats        `json:"stats"`
	Budgets         BudgetReport `json:"budgets"`
	Trends          []Trend      `json:"trends"`
	Alerts          []Alert      `json:"alerts"`
	Recommendations []string     `json:"recommendations"`
}

// Report builds a full performance report.
func (m *Monitor) Report() Report {
	stats := m.Stats()
	report := Report{
		GeneratedAt: m.now(),
		Stats:       stats,
		Budgets:     m.CheckBudgets(),
		Trends:      m.Trends(BudgetWindow),
		Alerts:      m.Alerts(),
	}
	report.Recommendations = m.recommend(stats)
	return report
}

func (m *Monitor) recommend(stats Stats) []string {
	recs := []string{}
	if limit, ok := m.Threshold(string(KindSynthesis)); ok && stats.AverageSynthesisMs > toMs(limit) {
		recs = append(recs, RecommendOptimizeSynthesis)
	}
	if stats.CacheHits+stats.CacheMisses > 0 && stats.CacheHitRate < minHealthyHitRate {
		recs = append(recs, RecommendWarmCache)
	}
	if stats.Errors > 0 {
		recs = append(recs, RecommendInvestigateErrors)
	}
	if limit, ok := m.Threshold(string(KindCacheHit)); ok && stats.AverageCacheHitMs > toMs(limit) {
		recs = append(recs, RecommendOptimizeCache)
	}
	return recs
}
