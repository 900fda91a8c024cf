package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/instrumentation"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
)

// maxUpcomingEvents caps how many events one calendar query returns. Ten
// upcoming events is plenty to find the next out-of-office blocks without
// paging through a whole calendar.
const maxUpcomingEvents = 10

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
	command string
}

// Instrumentation bundles the observability hooks wired into API calls.
// Zero fields are fine; a Client without hooks makes plain calls.
type Instrumentation struct {
	Metrics *instrumentation.Metrics
	Audit   *instrumentation.AuditLogger

	// Command tags audit entries with the CLI command that triggered the
	// API call.
	Command string
}

// NewClient creates a Calendar client from an authorized HTTP client.
// Additional options (a custom endpoint for tests) are passed through to the
// underlying service.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	return NewClientWithInstrumentation(ctx, httpClient, Instrumentation{}, opts...)
}

// NewClientWithInstrumentation creates a Calendar client that records
// metrics, spans and audit entries for every API call.
func NewClientWithInstrumentation(ctx context.Context, httpClient *http.Client, instr Instrumentation, opts ...option.ClientOption) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	svcOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		metrics: instr.Metrics,
		audit:   instr.Audit,
		command: instr.Command,
	}, nil
}

// UpcomingEvents lists the next events of a calendar starting now. The query
// expands recurring events into single instances and orders them by start
// time, capped at maxUpcomingEvents.
func (c *Client) UpcomingEvents(ctx context.Context, calendarID string) ([]EventSummary, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx,
		instrumentation.ServiceCalendar, instrumentation.OperationList,
		instrumentation.NewSpanAttributeBuilder().WithCalendar(calendarID).Build()...)
	defer span.End()

	inv := c.startInvocation(calendarID, instrumentation.OperationList)
	timeMin := time.Now().UTC().Format(time.RFC3339)

	start := time.Now()
	events, err := c.svc.Events.List(calendarID).
		TimeMin(timeMin).
		MaxResults(maxUpcomingEvents).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	c.finish(ctx, inv, instrumentation.OperationList, start, err)

	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, NewAPIError(instrumentation.OperationList, calendarID, err)
	}
	instrumentation.SetSpanSuccess(span)

	summaries := make([]EventSummary, 0, len(events.Items))
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	slog.Debug("fetched upcoming events",
		logging.CalendarHash(calendarID),
		logging.Count(len(summaries)))

	return summaries, nil
}

// GetCalendar retrieves a calendar's metadata from the user's calendar list,
// including the access role the account holds on it. It doubles as an access
// probe: a configured calendar the account is not subscribed to comes back
// as a 404.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*CalendarInfo, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx,
		instrumentation.ServiceCalendar, instrumentation.OperationGet,
		instrumentation.NewSpanAttributeBuilder().WithCalendar(calendarID).Build()...)
	defer span.End()

	inv := c.startInvocation(calendarID, instrumentation.OperationGet)

	start := time.Now()
	entry, err := c.svc.CalendarList.Get(calendarID).Context(ctx).Do()
	c.finish(ctx, inv, instrumentation.OperationGet, start, err)

	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, NewAPIError(instrumentation.OperationGet, calendarID, err)
	}
	instrumentation.SetSpanSuccess(span)

	slog.Debug("calendar metadata retrieved",
		logging.CalendarHash(calendarID),
		slog.String("access_role", entry.AccessRole))

	info := toCalendarInfo(entry)
	return &info, nil
}

// startInvocation opens an audit record for an API call, or nil when audit
// logging is not wired.
func (c *Client) startInvocation(calendarID, operation string) *instrumentation.APIInvocation {
	if c.audit == nil {
		return nil
	}
	return instrumentation.NewAPIInvocation(c.command).
		WithCalendar(calendarID).
		WithService(instrumentation.ServiceCalendar, operation)
}

// finish feeds one completed API call into metrics and the audit log.
func (c *Client) finish(ctx context.Context, inv *instrumentation.APIInvocation, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, operation, status, time.Since(start))

	if inv != nil {
		c.audit.LogInvocation(inv.WithSpanContext(ctx).Complete(err == nil, err))
	}
}
