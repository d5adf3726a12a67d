package curriculum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
)

// StageRecorder receives shard load timings.
type StageRecorder interface {
	RecordStage(stage perf.Stage, d time.Duration)
}

// shardIndex maps a day to its record within one shard.
type shardIndex map[int]domain.CurriculumRecord

// Store resolves days to curriculum records, loading shards lazily.
// It is safe for concurrent use.
type Store struct {
	source   ShardSource
	shards   *gocache.Cache
	loadMu   [ShardCount]sync.Mutex
	logger   *slog.Logger
	recorder StageRecorder
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStageRecorder attaches a recorder for shard load durations.
func WithStageRecorder(r StageRecorder) StoreOption {
	return func(s *Store) { s.recorder = r }
}

// NewStore creates a Store over source. A nil logger uses slog.Default().
func NewStore(source ShardSource, logger *slog.Logger, opts ...StoreOption) (*Store, error) {
	if source == nil {
		return nil, errors.New("shard source cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		source: source,
		shards: gocache.New(gocache.NoExpiration, 0),
		logger: logger.With("component", "curriculum_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the record for day. It never fails: on any load problem it
// logs the cause and returns FallbackRecord(day).
func (s *Store) Get(ctx context.Context, day int) domain.CurriculumRecord {
	rec, err := s.Lookup(ctx, day)
	if err != nil {
		s.logger.WarnContext(ctx, "serving fallback curriculum record",
			"day", day,
			"error", err)
		return FallbackRecord(day)
	}
	return rec
}

// Lookup returns the authoritative record for day or an error wrapping
// ErrInvalidDay, ErrShardLoad or ErrDayNotFound.
func (s *Store) Lookup(ctx context.Context, day int) (domain.CurriculumRecord, error) {
	shard, _, ok := ShardForDay(day)
	if !ok {
		return domain.CurriculumRecord{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}

	index, err := s.shard(ctx, shard)
	if err != nil {
		return domain.CurriculumRecord{}, err
	}

	rec, ok := index[day]
	if !ok || rec.Title == "" {
		return domain.CurriculumRecord{}, fmt.Errorf("%w: day %d", ErrDayNotFound, day)
	}
	return rec.Clone(), nil
}

// LoadAll loads every shard, continuing past failures. The returned error
// joins every shard failure.
func (s *Store) LoadAll(ctx context.Context) error {
	var errs []error
	for shard := 1; shard <= ShardCount; shard++ {
		if _, err := s.shard(ctx, shard); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShardsLoaded returns how many shards are held in memory.
func (s *Store) ShardsLoaded() int {
	return s.shards.ItemCount()
}

func shardKey(shard int) string {
	return fmt.Sprintf("shard:%02d", shard)
}

func (s *Store) shard(ctx context.Context, shard int) (shardIndex, error) {
	key := shardKey(shard)
	if v, ok := s.shards.Get(key); ok {
		return v.(shardIndex), nil
	}

	mu := &s.loadMu[shard-1]
	mu.Lock()
	defer mu.Unlock()

	if v, ok := s.shards.Get(key); ok {
		return v.(shardIndex), nil
	}

	start := time.Now()
	records, err := s.source.LoadShard(ctx, shard)
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.RecordStage(perf.StageDNALoad, elapsed)
	}
	if err != nil {
		if !errors.Is(err, ErrShardLoad) {
			err = fmt.Errorf("%w: shard %d: %w", ErrShardLoad, shard, err)
		}
		return nil, err
	}

	first, last, _ := ShardRange(shard)
	index := make(shardIndex, len(records))
	for _, rec := range records {
		if rec.Day < first || rec.Day > last {
			s.logger.WarnContext(ctx, "ignoring record outside shard",
				"shard", shard,
				"day", rec.Day)
			continue
		}
		index[rec.Day] = rec.Clone()
	}

	s.shards.Set(key, index, gocache.NoExpiration)
	s.logger.DebugContext(ctx, "curriculum shard loaded",
		"shard", shard,
		"records", len(index),
		"duration_ms", elapsed.Milliseconds())
	return index, nil
}
