// Package perf records latency samples for the synthesis pipeline, compares
// them against per-stage budgets and raises alerts when a budget is exceeded.
//
// The monitor is purely observational. Recording never blocks on I/O and
// never changes what the pipeline returns; alerts are logged at warn level
// and kept in a bounded list for reporting.
package perf
