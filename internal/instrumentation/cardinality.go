package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with calendar identifiers.

// ExtractCalendarDomain extracts the domain part from a calendar identifier,
// which is usually an email address. This reduces cardinality by using the
// domain instead of the full identifier.
//
// Example:
//
//	ExtractCalendarDomain("jane@example.com")  // "example.com"
//	ExtractCalendarDomain("team@company.com")  // "company.com"
//	ExtractCalendarDomain("primary")           // "unknown"
//	ExtractCalendarDomain("")                  // "unknown"
func ExtractCalendarDomain(calendarID string) string {
	if calendarID == "" {
		return "unknown"
	}

	parts := strings.Split(calendarID, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Common operation types for Google API metrics.
// Status, OAuth, and Service constants are defined in config.go.
const (
	OperationList     = "list"
	OperationGet      = "get"
	OperationRefresh  = "refresh"
	OperationExchange = "exchange"
)
