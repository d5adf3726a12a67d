// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Records logged with a context carrying a trace ID
// (see WithTraceID) are annotated with a trace_id attribute.
package logger
