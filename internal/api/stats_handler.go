package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/shared"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
)

// DefaultCostDays is the breakdown length of GET /api/costs.
const DefaultCostDays = 7

// MetricsSource exposes the performance monitor's views.
type MetricsSource interface {
	Stats() perf.Stats
	CheckBudgets() perf.BudgetReport
	Report() perf.Report
}

// SpendSource exposes generation spending.
type SpendSource interface {
	Summary(now time.Time, days int) budget.Summary
	Alerts(now time.Time) []budget.Alert
}

// CostReport is the body of GET /api/costs.
type CostReport struct {
	Summary budget.Summary `json:"summary"`
	Alerts  []budget.Alert `json:"alerts"`
}

// StatsHandler serves health and metrics endpoints.
type StatsHandler struct {
	metrics MetricsSource
	spend   SpendSource
	now     func() time.Time
}

// NewStatsHandler creates a StatsHandler. spend may be nil, in which case
// GET /api/costs responds 404.
func NewStatsHandler(metrics MetricsSource, spend SpendSource) *StatsHandler {
	return &StatsHandler{metrics: metrics, spend: spend, now: time.Now}
}

// Health handles GET /health.
func (h *StatsHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats handles GET /api/stats.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.metrics.Stats())
}

// Budgets handles GET /api/budgets.
func (h *StatsHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.metrics.CheckBudgets())
}

// Report handles GET /api/report.
func (h *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.metrics.Report())
}

// Costs handles GET /api/costs?days=.
func (h *StatsHandler) Costs(w http.ResponseWriter, r *http.Request) {
	if h.spend == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Cost tracking is disabled")
		return
	}

	days := DefaultCostDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 31 {
			shared.RespondWithFieldError(w, r, http.StatusBadRequest, "days", "days must be between 1 and 31")
			return
		}
		days = n
	}

	now := h.now()
	alerts := h.spend.Alerts(now)
	if alerts == nil {
		alerts = []budget.Alert{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CostReport{
		Summary: h.spend.Summary(now, days),
		Alerts:  alerts,
	})
}
