package curriculum

import "errors"

var (
	// ErrShardLoad indicates a shard could not be read or decoded.
	ErrShardLoad = errors.New("curriculum shard load failed")

	// ErrDayNotFound indicates the shard has no entry for a day.
	ErrDayNotFound = errors.New("curriculum day not found")

	// ErrInvalidDay indicates a day outside 1..366.
	ErrInvalidDay = errors.New("invalid curriculum day")
)
