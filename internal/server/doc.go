// Package server provides the optional Prometheus metrics endpoint for the
// google-calendar-ooo-report CLI.
//
// # Key Components
//
// MetricsServer exposes /metrics and /healthz on a dedicated listener,
// separate from the command output on stdout. It is started only when
// instrumentation is enabled and runs for the lifetime of the command,
// which lets a Prometheus sidecar scrape scheduled runs.
//
// The server uses conservative read, write, and idle timeouts so a stalled
// scraper cannot hold the process open past its shutdown deadline.
package server
