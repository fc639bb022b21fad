// Package observability groups the logging, metrics and tracing packages.
//
// Subpackages:
//   - logging: slog loggers and request-scoped context propagation
//   - metrics: Prometheus registry and recorders
//   - tracing: OpenTelemetry HTTP middleware and span helpers
package observability
