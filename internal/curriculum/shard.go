package curriculum

import "github.com/iLearnHow/mynextlesson-synthesis/internal/domain"

// ShardCount is the number of monthly shards.
const ShardCount = 12

// daysInShard follows a leap-year calendar so the shards cover exactly 366 days.
var daysInShard = [ShardCount]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ShardForDay returns the 1-based shard holding day and the day's position
// within it. ok is false for days outside the curriculum year.
func ShardForDay(day int) (shard, dayInShard int, ok bool) {
	if day < domain.FirstDay || day > domain.LastDay {
		return 0, 0, false
	}
	remaining := day
	for i, n := range daysInShard {
		if remaining <= n {
			return i + 1, remaining, true
		}
		remaining -= n
	}
	return 0, 0, false
}

// ShardRange returns the first and last day covered by shard.
func ShardRange(shard int) (first, last int, ok bool) {
	if shard < 1 || shard > ShardCount {
		return 0, 0, false
	}
	first = 1
	for i := 0; i < shard-1; i++ {
		first += daysInShard[i]
	}
	return first, first + daysInShard[shard-1] - 1, true
}
