package cache

import (
	"context"
	"log/slog"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// Remote is a shared second-level lesson store.
type Remote interface {
	Get(ctx context.Context, key string) (domain.SynthesisResult, bool, error)
	Set(ctx context.Context, key string, result domain.SynthesisResult) error
}

// Tiered checks a local FIFO first and falls back to a Remote store.
// Remote failures are logged and treated as misses.
type Tiered struct {
	local  *FIFO[domain.SynthesisResult]
	remote Remote
	logger *slog.Logger
}

// NewTiered creates a Tiered cache. remote may be nil, in which case
// Tiered behaves exactly like local.
func NewTiered(local *FIFO[domain.SynthesisResult], remote Remote, logger *slog.Logger) *Tiered {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tiered{
		local:  local,
		remote: remote,
		logger: logger.With("component", "lesson_cache"),
	}
	local.OnEvict(func(key string) {
		t.logger.Debug("evicted lesson from local cache", "key", key)
	})
	return t
}

// Get returns a copy of the cached result for key. Remote hits are promoted
// into the local tier.
func (t *Tiered) Get(ctx context.Context, key string) (domain.SynthesisResult, bool) {
	if v, ok := t.local.Get(key); ok {
		return v.Clone(), true
	}
	if t.remote == nil {
		return domain.SynthesisResult{}, false
	}

	v, ok, err := t.remote.Get(ctx, key)
	if err != nil {
		t.logger.WarnContext(ctx, "remote cache lookup failed", "key", key, "error", err)
		return domain.SynthesisResult{}, false
	}
	if !ok {
		return domain.SynthesisResult{}, false
	}
	t.local.Put(key, v.Clone())
	return v, true
}

// Put stores a copy of result in both tiers.
func (t *Tiered) Put(ctx context.Context, key string, result domain.SynthesisResult) {
	t.local.Put(key, result.Clone())
	if t.remote == nil {
		return
	}
	if err := t.remote.Set(ctx, key, result); err != nil {
		t.logger.WarnContext(ctx, "remote cache write failed", "key", key, "error", err)
	}
}

// Len returns the number of entries in the local tier.
func (t *Tiered) Len() int {
	return t.local.Len()
}

// Clear empties the local tier. Remote entries expire on their own.
func (t *Tiered) Clear() {
	t.local.Clear()
}
