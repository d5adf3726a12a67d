package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinuteWindow(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(Limits{PerMinute: 3, PerHour: 100, PerDay: 1000})
	now := time.Date(2026, time.March, 14, 12, 0, 15, 0, time.UTC)

	for i := 0; i < 3; i++ {
		res := rl.Check("10.0.0.1", now)
		require.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res := rl.Check("10.0.0.1", now)
	assert.False(t, res.Allowed)
	assert.Equal(t, ReasonMinuteExceeded, res.Reason)
	assert.Equal(t, 45*time.Second, res.RetryAfter)

	// Other clients are counted separately.
	assert.True(t, rl.Check("10.0.0.2", now).Allowed)

	// The next minute opens a new window.
	assert.True(t, rl.Check("10.0.0.1", now.Add(time.Minute)).Allowed)
}

func TestRateLimiterHourWindow(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(Limits{PerMinute: 10, PerHour: 2, PerDay: 100})
	now := time.Date(2026, time.March, 14, 12, 30, 0, 0, time.UTC)

	assert.True(t, rl.Check("c", now).Allowed)
	assert.True(t, rl.Check("c", now.Add(time.Minute)).Allowed)

	res := rl.Check("c", now.Add(2*time.Minute))
	assert.False(t, res.Allowed)
	assert.Equal(t, ReasonHourExceeded, res.Reason)
	assert.Equal(t, 28*time.Minute, res.RetryAfter)
}

func TestRateLimiterDeniedRequestsAreNotCounted(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(Limits{PerMinute: 1, PerHour: 2, PerDay: 100})
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	assert.True(t, rl.Check("c", now).Allowed)
	for i := 0; i < 5; i++ {
		assert.False(t, rl.Check("c", now).Allowed)
	}
	assert.True(t, rl.Check("c", now.Add(time.Minute)).Allowed,
		"denied requests must not consume the hourly allowance")
}

func TestRateLimiterTiers(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(Limits{})

	assert.Equal(t, DefaultLimits(), rl.LimitsFor("203.0.113.9"))
	assert.Equal(t, 120, rl.LimitsFor("premium_abc").PerMinute)
	assert.Equal(t, 300, rl.LimitsFor("enterprise_xyz").PerMinute)
}
