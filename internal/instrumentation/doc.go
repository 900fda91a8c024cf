// Package instrumentation provides OpenTelemetry instrumentation for the
// google-calendar-ooo-report CLI.
//
// This package enables observability through:
//   - OpenTelemetry metrics for Google API calls, OAuth operations, and report runs
//   - Tracing for command runs and API calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//   - OTLP export support for modern observability platforms
//
// Instrumentation is disabled by default: an interactive one-shot run stays
// silent unless observability is explicitly requested. Scheduled deployments
// (cron, Kubernetes CronJob) enable it via environment variables.
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of interactive authorization attempts by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// Calendar Scan Metrics:
//   - calendar_events_fetched_total: Counter of upcoming events returned by the API
//   - calendar_events_matched_total: Counter of events that qualified as out of office
//
// Report Run Metrics:
//   - report_runs_total: Counter of report runs by command and status
//   - report_run_duration_seconds: Histogram of full report run durations
//
// # Tracing
//
// Tracing spans are created for:
//   - CLI command runs (cli.<command>)
//   - Google API calls (google.<service>.<operation>)
//   - OAuth token operations
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: google-calendar-ooo-report)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "google-calendar-ooo-report",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a Google API operation
//	recorder.RecordGoogleAPIOperation(ctx, "calendar", "list", "success", time.Since(start))
//
//	// Record the outcome of scanning one calendar
//	recorder.RecordCalendarScan(ctx, "user@example.com", 10, 3)
package instrumentation
