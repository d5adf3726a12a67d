package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/curriculum"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

const (
	selectShardSQL = `
		SELECT day, title, concept, examples, reflection
		FROM curriculum_days
		WHERE day BETWEEN $1 AND $2
		ORDER BY day`

	upsertDaySQL = `
		INSERT INTO curriculum_days (day, title, concept, examples, reflection, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (day) DO UPDATE SET
			title = EXCLUDED.title,
			concept = EXCLUDED.concept,
			examples = EXCLUDED.examples,
			reflection = EXCLUDED.reflection,
			updated_at = NOW()`

	countDaysSQL = `SELECT COUNT(*) FROM curriculum_days`
)

// CurriculumSource implements curriculum.ShardSource over the
// curriculum_days table.
type CurriculumSource struct {
	db     DBTX
	logger *slog.Logger
}

var _ curriculum.ShardSource = (*CurriculumSource)(nil)

// NewCurriculumSource creates a CurriculumSource. If logger is nil, a
// default logger is used.
func NewCurriculumSource(db DBTX, logger *slog.Logger) (*CurriculumSource, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CurriculumSource{
		db:     db,
		logger: logger.With(slog.String("component", "curriculum_source")),
	}, nil
}

// WithTx returns a CurriculumSource that runs its queries in tx.
func (s *CurriculumSource) WithTx(tx *sql.Tx) *CurriculumSource {
	return &CurriculumSource{db: tx, logger: s.logger}
}

// LoadShard implements curriculum.ShardSource.
func (s *CurriculumSource) LoadShard(ctx context.Context, shard int) ([]domain.CurriculumRecord, error) {
	first, last, ok := curriculum.ShardRange(shard)
	if !ok {
		return nil, fmt.Errorf("shard %d out of range", shard)
	}

	rows, err := s.db.QueryContext(ctx, selectShardSQL, first, last)
	if err != nil {
		return nil, fmt.Errorf("query shard %d: %w", shard, MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close rows", "shard", shard, "error", cerr)
		}
	}()

	var records []domain.CurriculumRecord
	for rows.Next() {
		var (
			rec      domain.CurriculumRecord
			examples []byte
		)
		if err := rows.Scan(&rec.Day, &rec.Title, &rec.Concept, &examples, &rec.Reflection); err != nil {
			return nil, fmt.Errorf("scan shard %d: %w", shard, MapError(err))
		}
		if rec.Examples, err = decodeExamples(examples); err != nil {
			return nil, fmt.Errorf("day %d: %w", rec.Day, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shard %d: %w", shard, MapError(err))
	}

	s.logger.DebugContext(ctx, "loaded curriculum shard from database",
		"shard", shard,
		"records", len(records))
	return records, nil
}

// Upsert writes records, replacing any existing rows for the same days.
func (s *CurriculumSource) Upsert(ctx context.Context, records []domain.CurriculumRecord) error {
	for _, rec := range records {
		if rec.Day < domain.FirstDay || rec.Day > domain.LastDay {
			return fmt.Errorf("%w: day %d out of range", ErrInvalidRecord, rec.Day)
		}
		examples, err := encodeExamples(rec.Examples)
		if err != nil {
			return fmt.Errorf("day %d: %w", rec.Day, err)
		}
		if _, err := s.db.ExecContext(ctx, upsertDaySQL,
			rec.Day, rec.Title, rec.Concept, string(examples), rec.Reflection); err != nil {
			return fmt.Errorf("upsert day %d: %w", rec.Day, MapError(err))
		}
	}
	return nil
}

// Count returns the number of stored days.
func (s *CurriculumSource) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countDaysSQL).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Seed copies every record of src into the table in a single transaction.
func Seed(ctx context.Context, db *sql.DB, src curriculum.ShardSource, logger *slog.Logger) (int, error) {
	target, err := NewCurriculumSource(db, logger)
	if err != nil {
		return 0, err
	}

	var total int
	err = RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txTarget := target.WithTx(tx)
		for shard := 1; shard <= curriculum.ShardCount; shard++ {
			records, err := src.LoadShard(ctx, shard)
			if err != nil {
				return fmt.Errorf("read shard %d: %w", shard, err)
			}
			if err := txTarget.Upsert(ctx, records); err != nil {
				return err
			}
			total += len(records)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func decodeExamples(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var examples []string
	if err := json.Unmarshal(raw, &examples); err != nil {
		return nil, fmt.Errorf("decode examples: %w", err)
	}
	return examples, nil
}

func encodeExamples(examples []string) ([]byte, error) {
	if examples == nil {
		examples = []string{}
	}
	raw, err := json.Marshal(examples)
	if err != nil {
		return nil, fmt.Errorf("encode examples: %w", err)
	}
	return raw, nil
}
