package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// APIInvocation captures all information about a Google API invocation for
// audit logging. This provides an audit trail for every remote call a report
// run performs.
//
// # Privacy Considerations
//
// The CalendarID field usually contains an email address and is therefore PII.
// When logging, consider:
//   - Using CalendarDomain() to get only the domain for metrics/general logs
//   - Only logging the full identifier in audit-specific log streams
//   - Ensuring audit logs have appropriate access controls
type APIInvocation struct {
	// Command that drove the invocation (report, auth, calendars)
	Command string

	// Target information for Google services
	CalendarID  string // Calendar identifier, usually an email address
	ServiceName string // Google service (calendar, oauth)
	Operation   string // Operation type (list, get, refresh, exchange)

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// CalendarDomain returns the domain portion of the calendar identifier for
// lower-cardinality logging.
func (ai *APIInvocation) CalendarDomain() string {
	return ExtractCalendarDomain(ai.CalendarID)
}

// Status returns "success" or "error" based on the Success field.
func (ai *APIInvocation) Status() string {
	if ai.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
// This provides a consistent set of fields for all API invocation logs.
//
// # Cardinality
//
// This function uses cardinality-controlled values (calendar_domain)
// for metrics-compatible logging. For full audit logging, use LogAuditAttrs.
func (ai *APIInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("command", ai.Command),
		slog.String("calendar_domain", ai.CalendarDomain()),
		slog.Duration("duration", ai.Duration),
		slog.Bool("success", ai.Success),
	}

	// Add optional fields only if present
	if ai.ServiceName != "" {
		attrs = append(attrs, slog.String("service", ai.ServiceName))
	}
	if ai.Operation != "" {
		attrs = append(attrs, slog.String("operation", ai.Operation))
	}
	if ai.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ai.TraceID))
	}
	if ai.Error != "" {
		attrs = append(attrs, slog.String("error", ai.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging.
// This includes the full calendar identifier for compliance/audit purposes.
//
// # Security Warning
//
// This method includes PII (full calendar identifier). Ensure audit logs are:
//   - Stored securely with appropriate access controls
//   - Not exposed to general monitoring dashboards
//   - Retained according to compliance requirements
func (ai *APIInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("command", ai.Command),
		slog.String("calendar_id", ai.CalendarID),
		slog.Duration("duration", ai.Duration),
		slog.Bool("success", ai.Success),
	}

	// Add all optional fields
	if ai.ServiceName != "" {
		attrs = append(attrs, slog.String("service", ai.ServiceName))
	}
	if ai.Operation != "" {
		attrs = append(attrs, slog.String("operation", ai.Operation))
	}
	if ai.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ai.TraceID))
	}
	if ai.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ai.SpanID))
	}
	if ai.Error != "" {
		attrs = append(attrs, slog.String("error", ai.Error))
	}

	return attrs
}

// NewAPIInvocation creates a new APIInvocation with timing started.
// Call Complete() when the operation finishes.
func NewAPIInvocation(command string) *APIInvocation {
	return &APIInvocation{
		Command:   command,
		StartTime: time.Now(),
	}
}

// WithCalendar sets the calendar identifier.
func (ai *APIInvocation) WithCalendar(calendarID string) *APIInvocation {
	ai.CalendarID = calendarID
	return ai
}

// WithService sets the Google service and operation.
func (ai *APIInvocation) WithService(serviceName, operation string) *APIInvocation {
	ai.ServiceName = serviceName
	ai.Operation = operation
	return ai
}

// WithSpanContext extracts trace context from the current span.
func (ai *APIInvocation) WithSpanContext(ctx context.Context) *APIInvocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ai.TraceID = span.SpanContext().TraceID().String()
		ai.SpanID = span.SpanContext().SpanID().String()
	}
	return ai
}

// Complete marks the invocation as completed and calculates duration.
// Returns the same APIInvocation for method chaining.
func (ai *APIInvocation) Complete(success bool, err error) *APIInvocation {
	ai.Duration = time.Since(ai.StartTime)
	ai.Success = success
	if err != nil {
		ai.Error = err.Error()
	}
	return ai
}

// CompleteWithError marks the invocation as failed with the given error.
func (ai *APIInvocation) CompleteWithError(err error) *APIInvocation {
	return ai.Complete(false, err)
}

// CompleteSuccess marks the invocation as successful.
func (ai *APIInvocation) CompleteSuccess() *APIInvocation {
	return ai.Complete(true, nil)
}

// AuditLogger provides structured audit logging for Google API invocations.
// It wraps slog.Logger with convenience methods for logging remote operations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, PII is not included in logs (anonymized identifiers are used instead).
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: false,
		enabled:    true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// SetIncludePII sets whether to include full calendar identifiers in audit logs.
func (al *AuditLogger) SetIncludePII(include bool) {
	al.includePII = include
}

// SetEnabled sets whether audit logging is enabled.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogInvocation logs an API invocation using the standard log attributes.
// This is suitable for general operational logging with cardinality controls.
// If the logger is configured with IncludePII, full calendar identifiers are
// logged; otherwise, only domain-based identifiers are used.
func (al *AuditLogger) LogInvocation(ai *APIInvocation) {
	if !al.enabled {
		return
	}

	// Choose between PII and anonymized logging based on configuration
	var attrs []slog.Attr
	if al.includePII {
		attrs = ai.LogAuditAttrs()
	} else {
		attrs = ai.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ai.Success {
		al.logger.Info("operation_executed", args...)
	} else {
		al.logger.Warn("operation_failed", args...)
	}
}

// LogAudit logs an API invocation with full audit details.
// This includes PII (full calendar identifiers) for compliance/audit purposes.
// SECURITY: Ensure audit logs are routed to secure storage with appropriate access controls.
//
// Note: This method respects the enabled flag but always includes PII when called,
// regardless of the IncludePII configuration. Use LogInvocation for
// configuration-aware logging.
func (al *AuditLogger) LogAudit(ai *APIInvocation) {
	if !al.enabled {
		return
	}

	attrs := ai.LogAuditAttrs()
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	al.logger.Info("operation_audit", args...)
}
