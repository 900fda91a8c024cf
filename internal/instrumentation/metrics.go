package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrStatus         = "status"
	attrOperation      = "operation"
	attrService        = "service"
	attrResult         = "result"
	attrCommand        = "command"
	attrCalendar       = "calendar_id"
	attrCalendarDomain = "calendar_domain"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// OAuth metrics
	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	// Calendar scan metrics
	eventsFetchedTotal metric.Int64Counter
	eventsMatchedTotal metric.Int64Counter

	// Report run metrics
	reportRunsTotal   metric.Int64Counter
	reportRunDuration metric.Float64Histogram

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// Google API Metrics
	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	// OAuth Metrics
	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of OAuth authorization attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	// Calendar scan metrics
	m.eventsFetchedTotal, err = meter.Int64Counter(
		"calendar_events_fetched_total",
		metric.WithDescription("Total number of upcoming events returned by the API"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_events_fetched_total counter: %w", err)
	}

	m.eventsMatchedTotal, err = meter.Int64Counter(
		"calendar_events_matched_total",
		metric.WithDescription("Total number of events that qualified as out of office"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_events_matched_total counter: %w", err)
	}

	// Report run metrics
	m.reportRunsTotal, err = meter.Int64Counter(
		"report_runs_total",
		metric.WithDescription("Total number of report runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_runs_total counter: %w", err)
	}

	m.reportRunDuration, err = meter.Float64Histogram(
		"report_run_duration_seconds",
		metric.WithDescription("Full report run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_run_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordGoogleAPIOperation records a Google API operation with service, operation,
// status, and duration.
//
// Parameters:
//   - service: service name ("calendar", "oauth")
//   - operation: Operation type (list, get, refresh, exchange)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records an interactive OAuth authorization attempt with result.
// Result should be one of: "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m == nil || m.oauthAuthTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordOAuthTokenRefresh records an OAuth token refresh attempt with result.
// Result should be one of: "success", "failure", "expired"
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}

	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCalendarScan records the outcome of fetching and filtering one calendar.
// The calendar's email domain is always used as a label; the full identifier is
// added only when detailedLabels is enabled.
//
// Parameters:
//   - calendarID: the calendar that was queried
//   - fetched: number of upcoming events the API returned
//   - matched: number of events that qualified as out of office
func (m *Metrics) RecordCalendarScan(ctx context.Context, calendarID string, fetched, matched int) {
	if m == nil || m.eventsFetchedTotal == nil || m.eventsMatchedTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCalendarDomain, ExtractCalendarDomain(calendarID)),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && calendarID != "" {
		attrs = append(attrs, attribute.String(attrCalendar, calendarID))
	}

	m.eventsFetchedTotal.Add(ctx, int64(fetched), metric.WithAttributes(attrs...))
	m.eventsMatchedTotal.Add(ctx, int64(matched), metric.WithAttributes(attrs...))
}

// RecordReportRun records a full command pass with status and duration.
//
// Parameters:
//   - command: the command that drove the pass ("report", "calendars", "auth")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the whole pass
func (m *Metrics) RecordReportRun(ctx context.Context, command, status string, duration time.Duration) {
	if m == nil || m.reportRunsTotal == nil || m.reportRunDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCommand, command),
		attribute.String(attrStatus, status),
	}

	m.reportRunsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.reportRunDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
