package budget

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func TestNewTrackerDefaults(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{}, nil)
	assert.Equal(t, DefaultConfig().Daily, tr.Config().Daily)
	assert.Equal(t, DefaultConfig().Monthly, tr.Config().Monthly)
	assert.Equal(t, DefaultConfig().MaxCostPerLesson, tr.Config().MaxCostPerLesson)
}

func TestTrackerCost(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{PricePer1KTokens: 0.02}, nil)

	tests := []struct {
		tokens int
		want   float64
	}{
		{tokens: 0, want: 0},
		{tokens: -5, want: 0},
		{tokens: 1000, want: 0.02},
		{tokens: 2500, want: 0.05},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tr.Cost(tt.tokens), 1e-9, "tokens=%d", tt.tokens)
	}
}

func TestTrackerRecordAndAllow(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{Daily: 1, Monthly: 3, MaxCostPerLesson: 1, PricePer1KTokens: 0.1}, nil)

	d := tr.Allow(testNow)
	require.True(t, d.Allowed)
	assert.InDelta(t, 1.0, d.DailyRemaining, 1e-9)

	cost := tr.Record(testNow, 4000)
	assert.InDelta(t, 0.4, cost, 1e-9)

	daily, monthly := tr.Spent(testNow)
	assert.InDelta(t, 0.4, daily, 1e-9)
	assert.InDelta(t, 0.4, monthly, 1e-9)

	tr.Record(testNow, 6000)
	d = tr.Allow(testNow)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonDailyExceeded, d.Reason)

	// A new day resets the daily counter but keeps the month.
	tomorrow := testNow.Add(24 * time.Hour)
	d = tr.Allow(tomorrow)
	assert.True(t, d.Allowed)
	assert.InDelta(t, 2.0, d.MonthlyRemaining, 1e-9)
}

func TestTrackerMonthlyLimit(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{Daily: 10, Monthly: 10, MaxCostPerLesson: 10, PricePer1KTokens: 1}, nil)

	for day := 0; day < 4; day++ {
		tr.Record(testNow.AddDate(0, 0, day), 3000)
	}
	d := tr.Allow(testNow.AddDate(0, 0, 5))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonMonthlyExceeded, d.Reason)
}

func TestTrackerAlerts(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{Daily: 1, Monthly: 100, MaxCostPerLesson: 1, PricePer1KTokens: 1}, nil)

	tr.Record(testNow, 800)
	assert.Empty(t, tr.Alerts(testNow))

	tr.Record(testNow, 150)
	alerts := tr.Alerts(testNow)
	require.Len(t, alerts, 1)
	assert.Equal(t, "daily", alerts[0].Period)
	assert.InDelta(t, 0.95, alerts[0].Ratio, 1e-9)
}

func TestTrackerConcurrentRecord(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{Daily: 1000, Monthly: 1000, MaxCostPerLesson: 1, PricePer1KTokens: 1}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(testNow, 1000)
		}()
	}
	wg.Wait()

	daily, _ := tr.Spent(testNow)
	assert.InDelta(t, 50.0, daily, 1e-9)
}

func TestTrackerSummary(t *testing.T) {
	t.Parallel()
	tr := NewTracker(Config{PricePer1KTokens: 1}, nil)

	tr.Record(testNow, 1000)
	tr.Record(testNow.AddDate(0, 0, -1), 3000)

	s := tr.Summary(testNow, 3)
	require.Len(t, s.Breakdown, 3)
	assert.Equal(t, "2026-03-12", s.Breakdown[0].Date)
	assert.Equal(t, "2026-03-14", s.Breakdown[2].Date)
	assert.InDelta(t, 3.0, s.Breakdown[1].Cost, 1e-9)
	assert.InDelta(t, 4.0, s.Total, 1e-9)
	assert.InDelta(t, 4.0/3, s.Average, 1e-9)
}
