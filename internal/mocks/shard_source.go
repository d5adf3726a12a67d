package mocks

import (
	"context"
	"sync"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// MockShardSource implements curriculum.ShardSource for testing
type MockShardSource struct {
	// LoadShardFn allows test cases to mock the LoadShard behavior
	LoadShardFn func(ctx context.Context, shard int) ([]domain.CurriculumRecord, error)

	// Records is returned for every shard when LoadShardFn is nil,
	// filtered to the days of the requested shard by the store.
	Records []domain.CurriculumRecord
	Err     error

	mu    sync.Mutex
	calls map[int]int
}

// LoadShard implements curriculum.ShardSource
func (m *MockShardSource) LoadShard(ctx context.Context, shard int) ([]domain.CurriculumRecord, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[int]int)
	}
	m.calls[shard]++
	m.mu.Unlock()

	if m.LoadShardFn != nil {
		return m.LoadShardFn(ctx, shard)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.CurriculumRecord, len(m.Records))
	for i, rec := range m.Records {
		out[i] = rec.Clone()
	}
	return out, nil
}

// Calls returns how many times shard was requested.
func (m *MockShardSource) Calls(shard int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[shard]
}
