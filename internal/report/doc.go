// Package report assembles and renders the out-of-office report: the
// sequential per-calendar fetch loop, the filter application, and the text
// output.
//
// Build keeps two invariants. Calendars whose query returns no upcoming
// events are omitted from the report entirely, never included with an empty
// list. And the first API failure aborts the whole run with no report at
// all; results already fetched are discarded rather than printed as a
// partial report, so a scheduled run either delivers the full picture or a
// clear error.
package report
