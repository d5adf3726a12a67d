// Package mocks holds hand-written fakes of the service's external
// boundaries: the curriculum shard source, the external lesson generator and
// the shared lesson cache.
//
// Each fake either takes a function field that overrides its behavior or
// exposes plain fields for canned results, and records how it was called:
//
//	gen := &mocks.MockGenerator{
//	    GenerateFn: func(ctx context.Context, req generation.Request) (*generation.Response, error) {
//	        return &generation.Response{Text: "lesson"}, nil
//	    },
//	}
//	engine, _ := synthesis.NewEngine(store, synthesis.WithGenerator(gen))
//
// The fakes are safe for concurrent use so they can back engine tests that
// synthesize in parallel.
package mocks
