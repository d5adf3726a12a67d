package perf

import "time"

// Kind is the category of a request-level sample.
type Kind string

// Request-level sample kinds.
const (
	KindSynthesis Kind = "synthesis"
	KindCacheHit  Kind = "cache_hit"
	KindCacheMiss Kind = "cache_miss"
	KindError     Kind = "error"
)

// Kinds lists the request-level kinds in reporting order.
var Kinds = []Kind{KindSynthesis, KindCacheHit, KindCacheMiss, KindError}

// Stage names one step of the pipeline.
type Stage string

// Pipeline stages.
const (
	StageDNALoad              Stage = "dna_load"
	StageAgeContextualization Stage = "age_contextualization"
	StageToneSynthesis        Stage = "tone_synthesis"
	StageContentGeneration    Stage = "content_generation"
	StageExternalGeneration   Stage = "external_generation"
)

// Stages lists the pipeline stages in reporting order.
var Stages = []Stage{
	StageDNALoad,
	StageAgeContextualization,
	StageToneSynthesis,
	StageContentGeneration,
	StageExternalGeneration,
}

// Sample is one recorded measurement. Samples are append-only.
type Sample struct {
	Name     string
	Duration time.Duration
	At       time.Time
	Metadata map[string]string
}

// Default buffer sizes.
const (
	DefaultCapacity      = 1000
	DefaultErrorCapacity = 100
	DefaultAlertCapacity = 100
)

// DefaultThresholds returns the reference latency budgets keyed by kind or stage name.
func DefaultThresholds() map[string]time.Duration {
	return map[string]time.Duration{
		string(KindSynthesis):             200 * time.Millisecond,
		string(KindCacheHit):              10 * time.Millisecond,
		string(StageDNALoad):              50 * time.Millisecond,
		string(StageAgeContextualization): 30 * time.Millisecond,
		string(StageToneSynthesis):        40 * time.Millisecond,
		string(StageContentGeneration):    80 * time.Millisecond,
		string(StageExternalGeneration):   5000 * time.Millisecond,
	}
}

// ring is a fixed-size buffer keeping the most recent samples.
type ring struct {
	buf  []Sample
	next int
	full bool
}

func newRing(capacity int) *ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ring{buf: make([]Sample, capacity)}
}

func (r *ring) push(s Sample) {
	r.buf[r.next] = s
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// snapshot returns the samples oldest first.
func (r *ring) snapshot() []Sample {
	if !r.full {
		return append([]Sample(nil), r.buf[:r.next]...)
	}
	out := make([]Sample, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

func (r *ring) since(t time.Time) []Sample {
	all := r.snapshot()
	for i, s := range all {
		if !s.At.Before(t) {
			return all[i:]
		}
	}
	return nil
}
