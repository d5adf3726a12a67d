package mocks

import (
	"context"
	"sync"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// MockRemoteCache implements cache.Remote for testing with an in-memory map.
type MockRemoteCache struct {
	// GetErr and SetErr, when set, are returned by every call
	GetErr error
	SetErr error

	mu      sync.Mutex
	entries map[string]domain.SynthesisResult
	gets    int
	sets    int
}

// NewMockRemoteCache creates an empty MockRemoteCache
func NewMockRemoteCache() *MockRemoteCache {
	return &MockRemoteCache{entries: make(map[string]domain.SynthesisResult)}
}

// Get implements cache.Remote
func (m *MockRemoteCache) Get(_ context.Context, key string) (domain.SynthesisResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.GetErr != nil {
		return domain.SynthesisResult{}, false, m.GetErr
	}
	v, ok := m.entries[key]
	return v.Clone(), ok, nil
}

// Set implements cache.Remote
func (m *MockRemoteCache) Set(_ context.Context, key string, result domain.SynthesisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.entries == nil {
		m.entries = make(map[string]domain.SynthesisResult)
	}
	m.entries[key] = result.Clone()
	return nil
}

// Len returns the number of stored entries
func (m *MockRemoteCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Counts returns the number of Get and Set calls
func (m *MockRemoteCache) Counts() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets, m.sets
}
