package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/platform/logger"
)

// TraceIDHeader carries the trace ID on responses.
const TraceIDHeader = "X-Trace-ID"

// SetTraceID adds a fresh trace ID to the context: the 32-character hex form
// of a random UUID, matching the width of an OpenTelemetry trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	return logger.TraceID(ctx)
}
