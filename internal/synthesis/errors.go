package synthesis

import "errors"

// ErrPipelinePanic wraps a panic recovered from a pipeline stage.
var ErrPipelinePanic = errors.New("synthesis pipeline panicked")
