package report

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/calendar"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/instrumentation"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/settings"
)

// Fetcher is the slice of the calendar client the report loop needs.
type Fetcher interface {
	UpcomingEvents(ctx context.Context, calendarID string) ([]calendar.EventSummary, error)
}

// CalendarEvents holds the qualifying events of one calendar.
type CalendarEvents struct {
	CalendarID string
	Events     []calendar.EventSummary
}

// Report maps calendars to their qualifying upcoming events, preserving the
// configured calendar order. Built once, rendered once, discarded.
type Report struct {
	Calendars []CalendarEvents
}

// Empty reports whether no calendar made it into the report.
func (r *Report) Empty() bool {
	return len(r.Calendars) == 0
}

// Build queries every configured calendar in order, filters the events and
// assembles the report. A calendar whose query returns no events at all is
// omitted entirely; a calendar with upcoming events but no qualifying ones
// stays in the report with an empty list. The first API failure aborts the
// loop and returns no report, so a partial mapping never escapes. metrics
// may be nil.
func Build(ctx context.Context, fetcher Fetcher, cfg *settings.Settings, metrics *instrumentation.Metrics) (*Report, error) {
	rep := &Report{}

	for _, calendarID := range cfg.CalendarIDs {
		events, err := fetcher.UpcomingEvents(ctx, calendarID)
		if err != nil {
			return nil, err
		}

		matched := calendar.FilterOutOfOffice(events, cfg.Keywords)

		metrics.RecordCalendarScan(ctx, calendarID, len(events), len(matched))
		instrumentation.AddSpanEvent(trace.SpanFromContext(ctx), "calendar.scanned",
			instrumentation.NewSpanAttributeBuilder().
				WithCalendar(calendarID).
				WithEventCounts(len(events), len(matched)).
				Build()...)

		// A calendar with no upcoming events stays out of the report
		if len(events) == 0 {
			continue
		}

		rep.Calendars = append(rep.Calendars, CalendarEvents{
			CalendarID: calendarID,
			Events:     matched,
		})
	}

	return rep, nil
}
