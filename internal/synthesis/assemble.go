package synthesis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/tone"
)

// assembled holds the five lesson fields.
type assembled struct {
	Title        string
	Introduction string
	Concept      string
	Examples     []string
	Reflection   string
}

// assemble builds the lesson fields from tctx concurrently. Each field is
// written by exactly one goroutine.
func assemble(ctx context.Context, lang domain.Language, tctx tone.Context) (assembled, error) {
	var out assembled
	g, _ := errgroup.WithContext(ctx)

	goSafe(g, func() { out.Title = tctx.Title })
	goSafe(g, func() { out.Introduction = localizeIntro(lang, tctx.Introduction) })
	goSafe(g, func() { out.Concept = localizeConcept(lang, tctx.Concept) })
	goSafe(g, func() { out.Examples = append([]string(nil), tctx.Examples...) })
	goSafe(g, func() { out.Reflection = localizeReflection(lang, tctx.Reflection) })

	if err := g.Wait(); err != nil {
		return assembled{}, err
	}
	return out, nil
}

// goSafe runs fn on g, turning a panic into the group's error.
func goSafe(g *errgroup.Group, fn func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: assemble: %v", ErrPipelinePanic, r)
			}
		}()
		fn()
		return nil
	})
}
