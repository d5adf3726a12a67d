package synthesis

import (
	"context"
	"errors"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/generation"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/tone"
)

// generateExternal asks the configured generator for the lesson body and
// returns tctx with the generated sections substituted. It reports false,
// leaving tctx untouched, when the call is skipped or fails.
func (e *Engine) generateExternal(
	ctx context.Context,
	req domain.SynthesisRequest,
	rec domain.CurriculumRecord,
	tctx tone.Context,
) (tone.Context, bool) {
	log := e.logger.With("day", req.Day, "age", req.Age, "tone", req.Tone)

	if rec.IsFallback {
		log.DebugContext(ctx, "skipping external generation for fallback record")
		return tctx, false
	}
	if e.budget != nil {
		if decision := e.budget.Allow(e.now()); !decision.Allowed {
			log.WarnContext(ctx, "skipping external generation, budget exhausted",
				"reason", decision.Reason,
				"daily_remaining", decision.DailyRemaining,
				"monthly_remaining", decision.MonthlyRemaining)
			return tctx, false
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.externalTimeout)
	defer cancel()

	resp, err := e.generator.Generate(callCtx, generation.Request{
		Day:             req.Day,
		Age:             req.Age,
		AgeGroup:        generation.AgeGroup(req.Age),
		Tone:            string(req.Tone),
		ToneDescription: tctx.Profile.Description,
		Topic:           rec.Title,
	})
	if err == nil && resp == nil {
		err = generation.ErrInvalidResponse
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.WarnContext(ctx, "external generation timed out, using templates",
				"timeout", e.externalTimeout)
		} else {
			log.WarnContext(ctx, "external generation failed, using templates",
				"error", err)
		}
		return tctx, false
	}

	out := tctx
	switch {
	case resp.Sections.Complete():
		out.Introduction = resp.Sections.Introduction
		out.Concept = resp.Sections.Concept
		out.Examples = append([]string(nil), resp.Sections.Examples...)
		out.Reflection = resp.Sections.Reflection
	case resp.Text != "":
		out.Concept = resp.Text
	default:
		log.WarnContext(ctx, "external generation returned no content, using templates")
		return tctx, false
	}

	if e.budget != nil {
		cost := e.budget.Record(e.now(), resp.TokensUsed)
		log.DebugContext(ctx, "recorded external generation cost",
			"tokens", resp.TokensUsed,
			"cost", cost)
	}
	return out, true
}
