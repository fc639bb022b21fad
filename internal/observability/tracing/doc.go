// Package tracing wires OpenTelemetry spans into the HTTP layer and the
// ingest pipeline. No exporter is configured here; the binary installs a
// tracer provider if it wants spans shipped anywhere.
//
//	handler := tracing.Middleware(mux)
//
//	ctx, span := tracing.StartSpan(ctx, "ingest.batch")
//	defer func() { tracing.EndSpan(span, err) }()
package tracing
