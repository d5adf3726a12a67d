package synthesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/age"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/cache"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/generation"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/logger"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/tone"
)

// DefaultExternalTimeout bounds one call to the external generator.
const DefaultExternalTimeout = 5 * time.Second

// TracerName is the instrumentation scope of the engine's spans.
const TracerName = "github.com/iLearnHow/mynextlesson-synthesis/internal/synthesis"

// ResultCache stores synthesized lessons by request key.
type ResultCache interface {
	Get(ctx context.Context, key string) (domain.SynthesisResult, bool)
	Put(ctx context.Context, key string, result domain.SynthesisResult)
	Len() int
	Clear()
}

// CurriculumStore resolves a day to its curriculum record. Implementations
// never fail; they substitute a fallback record instead.
type CurriculumStore interface {
	Get(ctx context.Context, day int) domain.CurriculumRecord
}

// Engine synthesizes personalized lessons. It is safe for concurrent use.
type Engine struct {
	store           CurriculumStore
	ages            *age.Contextualizer
	tones           *tone.Synthesizer
	cache           ResultCache
	monitor         *perf.Monitor
	generator       generation.Generator
	budget          *budget.Tracker
	selector        tone.Selector
	externalTimeout time.Duration
	logger          *slog.Logger
	tracer          trace.Tracer
	now             func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache replaces the default in-memory FIFO cache.
func WithCache(c ResultCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithMonitor replaces the default performance monitor.
func WithMonitor(m *perf.Monitor) Option {
	return func(e *Engine) { e.monitor = m }
}

// WithGenerator enables external generation of lesson bodies.
func WithGenerator(g generation.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithBudget gates external generation on a spend tracker.
func WithBudget(t *budget.Tracker) Option {
	return func(e *Engine) { e.budget = t }
}

// WithSelector sets how tone phrases are chosen.
func WithSelector(s tone.Selector) Option {
	return func(e *Engine) { e.selector = s }
}

// WithExternalTimeout overrides DefaultExternalTimeout.
func WithExternalTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.externalTimeout = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer replaces the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine reading curriculum records from store.
func NewEngine(store CurriculumStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("curriculum store cannot be nil")
	}

	e := &Engine{
		store:           store,
		externalTimeout: DefaultExternalTimeout,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.selector == nil {
		e.selector = tone.RandomSelector{}
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(TracerName)
	}
	if e.monitor == nil {
		e.monitor = perf.NewMonitor(e.logger)
	}
	if e.cache == nil {
		e.cache = cache.NewTiered(cache.NewFIFO[domain.SynthesisResult](cache.DefaultCapacity), nil, e.logger)
	}
	e.ages = age.NewContextualizer(e.logger)
	e.tones = tone.NewSynthesizer(e.selector, e.logger)
	e.logger = e.logger.With("component", "synthesis_engine")

	return e, nil
}

// Synthesize returns the lesson for req. The only error it returns is a
// validation error; every later failure yields a fallback lesson.
//
// Cancellation of ctx does not abort a synthesis in progress, so the result
// still reaches the cache.
func (e *Engine) Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.SynthesisResult, error) {
	if err := req.Validate(); err != nil {
		return domain.SynthesisResult{}, err
	}

	ctx = context.WithoutCancel(ctx)
	ctx, span := e.tracer.Start(ctx, "synthesis.synthesize", trace.WithAttributes(
		attribute.Int("lesson.day", req.Day),
		attribute.Int("lesson.age", req.Age),
		attribute.String("lesson.tone", string(req.Tone)),
		attribute.String("lesson.language", string(req.Language)),
	))
	defer span.End()

	traceID := logger.TraceID(ctx)
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	if traceID != "" {
		ctx = logger.WithTraceID(ctx, traceID)
	}

	key := req.CacheKey()
	start := e.now()

	if cached, ok := e.cache.Get(ctx, key); ok {
		cached.Metadata.FromCache = true
		cached.Metadata.TraceID = traceID
		e.monitor.Record(perf.KindCacheHit, e.now().Sub(start), map[string]string{"key": key})
		span.SetAttributes(attribute.Bool("lesson.cache_hit", true))
		return cached, nil
	}
	e.monitor.Record(perf.KindCacheMiss, e.now().Sub(start), map[string]string{"key": key})
	span.SetAttributes(attribute.Bool("lesson.cache_hit", false))

	result, err := e.synthesize(ctx, req, start)
	if err != nil {
		elapsed := e.now().Sub(start)
		e.logger.ErrorContext(ctx, "lesson synthesis failed, serving fallback",
			"key", key,
			"error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "synthesis failed")
		e.monitor.Record(perf.KindError, elapsed, map[string]string{
			"key":   key,
			"error": err.Error(),
		})

		fallback := FallbackResult(req, err.Error(), e.now())
		fallback.Metadata.SynthesisTimeMs = toMs(elapsed)
		fallback.Metadata.TraceID = traceID
		return fallback, nil
	}

	result.Metadata.TraceID = traceID
	if result.Metadata.IsFallback {
		// A fallback may stand in for a transient load failure; the next
		// request retries the pipeline.
		e.logger.DebugContext(ctx, "not caching fallback lesson", "key", key)
	} else {
		e.cache.Put(ctx, key, result)
	}
	e.monitor.Record(perf.KindSynthesis, e.now().Sub(start), map[string]string{
		"key":    key,
		"source": string(result.Metadata.Source),
	})
	span.SetAttributes(
		attribute.String("lesson.source", string(result.Metadata.Source)),
		attribute.Bool("lesson.fallback", result.Metadata.IsFallback),
	)
	return result, nil
}

// synthesize runs the pipeline stages. A panic in any stage is returned as an error.
func (e *Engine) synthesize(ctx context.Context, req domain.SynthesisRequest, start time.Time) (result domain.SynthesisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPipelinePanic, r)
		}
	}()

	var rec domain.CurriculumRecord
	e.stage(ctx, "synthesis.load", perf.StageDNALoad, func(sctx context.Context) {
		rec = e.store.Get(sctx, req.Day)
	})

	var actx age.Context
	e.stage(ctx, "synthesis.age", perf.StageAgeContextualization, func(context.Context) {
		actx = e.ages.Contextualize(req.Age, rec)
	})

	var tctx tone.Context
	e.stage(ctx, "synthesis.tone", perf.StageToneSynthesis, func(context.Context) {
		tctx = e.tones.Synthesize(req.Tone, actx)
	})

	source := domain.SourceTemplate
	if e.generator != nil {
		var ok bool
		e.stage(ctx, "synthesis.external", perf.StageExternalGeneration, func(sctx context.Context) {
			tctx, ok = e.generateExternal(sctx, req, rec, tctx)
		})
		if ok {
			source = domain.SourceExternal
		}
	}

	var lesson assembled
	e.stage(ctx, "synthesis.assemble", perf.StageContentGeneration, func(sctx context.Context) {
		lesson, err = assemble(sctx, req.Language, tctx)
	})
	if err != nil {
		return domain.SynthesisResult{}, err
	}

	now := e.now()
	return domain.SynthesisResult{
		Title:        lesson.Title,
		Introduction: lesson.Introduction,
		Concept:      lesson.Concept,
		Examples:     lesson.Examples,
		Reflection:   lesson.Reflection,
		Metadata: domain.Metadata{
			Day:                req.Day,
			Age:                req.Age,
			Tone:               req.Tone,
			Language:           req.Language,
			DurationLabel:      DurationLabel(actx.AttentionSpanMinutes),
			ComplexityLabel:    ComplexityLabel(actx.Profile.ComplexityLevel, req.Tone),
			Avatar:             tctx.Profile.Avatar,
			GeneratedAtEpochMs: now.UnixMilli(),
			SynthesisTimeMs:    toMs(now.Sub(start)),
			IsFallback:         rec.IsFallback || actx.IsFallback || tctx.IsFallback,
			Source:             source,
		},
	}, nil
}

// stage runs fn inside a span and records its duration under stage.
func (e *Engine) stage(ctx context.Context, name string, stage perf.Stage, fn func(ctx context.Context)) {
	ctx, span := e.tracer.Start(ctx, name)
	defer span.End()
	began := e.now()
	fn(ctx)
	e.monitor.RecordStage(stage, e.now().Sub(began))
}

// Monitor returns the engine's performance monitor.
func (e *Engine) Monitor() *perf.Monitor {
	return e.monitor
}

// Stats reports the monitor's current statistics.
func (e *Engine) Stats() perf.Stats {
	return e.monitor.Stats()
}

// CacheLen returns the number of cached lessons.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}

// Reset clears the cache and every recorded sample.
func (e *Engine) Reset() {
	e.cache.Clear()
	e.monitor.Reset()
}

// Shutdown stops metric collection. Synthesis keeps working.
func (e *Engine) Shutdown() {
	e.monitor.Shutdown()
}

func toMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
