package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/instrumentation"
)

const eventsResponse = `{
  "kind": "calendar#events",
  "items": [
    {
      "id": "evt-1",
      "summary": "Team Vacation",
      "status": "confirmed",
      "eventType": "outOfOffice",
      "start": {"dateTime": "2026-09-01T09:00:00Z"},
      "end": {"dateTime": "2026-09-01T17:00:00Z"}
    },
    {
      "id": "evt-2",
      "summary": "Conference",
      "status": "confirmed",
      "eventType": "default",
      "start": {"date": "2026-09-03"},
      "end": {"date": "2026-09-04"}
    }
  ]
}`

const calendarResponse = `{
  "kind": "calendar#calendarListEntry",
  "id": "jane@example.com",
  "summary": "Jane Smith",
  "description": "Team calendar",
  "timeZone": "America/Sao_Paulo",
  "accessRole": "reader",
  "primary": false
}`

// newTestClient builds a Client against a fake Calendar API endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClient_NilHTTPClient(t *testing.T) {
	_, err := NewClient(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error for nil HTTP client")
	}
}

func TestUpcomingEvents(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, eventsResponse)
	})

	events, err := client.UpcomingEvents(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("UpcomingEvents returned error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/events") {
		t.Errorf("Expected events path, got %s", gotPath)
	}
	if got := gotQuery.Get("maxResults"); got != "10" {
		t.Errorf("Expected maxResults=10, got %q", got)
	}
	if got := gotQuery.Get("singleEvents"); got != "true" {
		t.Errorf("Expected singleEvents=true, got %q", got)
	}
	if got := gotQuery.Get("orderBy"); got != "startTime" {
		t.Errorf("Expected orderBy=startTime, got %q", got)
	}

	timeMin, err := time.Parse(time.RFC3339, gotQuery.Get("timeMin"))
	if err != nil {
		t.Fatalf("timeMin %q is not RFC3339: %v", gotQuery.Get("timeMin"), err)
	}
	if since := time.Since(timeMin); since < 0 || since > time.Minute {
		t.Errorf("Expected timeMin close to now, got %v", timeMin)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.ID != "evt-1" {
		t.Errorf("Expected ID evt-1, got %s", first.ID)
	}
	if first.Summary != "Team Vacation" {
		t.Errorf("Expected summary 'Team Vacation', got %s", first.Summary)
	}
	if first.EventType != EventTypeOutOfOffice {
		t.Errorf("Expected outOfOffice event type, got %s", first.EventType)
	}
	if first.AllDay {
		t.Error("Expected timed event, got all-day")
	}
	if got := first.StartString(); got != "2026-09-01T09:00:00Z" {
		t.Errorf("Expected RFC3339 start, got %s", got)
	}

	second := events[1]
	if !second.AllDay {
		t.Error("Expected all-day event")
	}
	if got := second.StartString(); got != "2026-09-03" {
		t.Errorf("Expected date-only start, got %s", got)
	}
}

func TestUpcomingEvents_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"Forbidden"}}`)
	})

	_, err := client.UpcomingEvents(context.Background(), "locked@example.com")
	if err == nil {
		t.Fatal("Expected error for forbidden calendar")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.Operation != instrumentation.OperationList {
		t.Errorf("Expected list operation, got %s", apiErr.Operation)
	}
	if apiErr.CalendarID != "locked@example.com" {
		t.Errorf("Expected calendar ID in error, got %s", apiErr.CalendarID)
	}
	if !IsPermissionDenied(err) {
		t.Error("Expected IsPermissionDenied to be true")
	}
	if IsNotFound(err) {
		t.Error("Expected IsNotFound to be false")
	}
}

func TestGetCalendar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, calendarResponse)
	})

	info, err := client.GetCalendar(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("GetCalendar returned error: %v", err)
	}

	if info.ID != "jane@example.com" {
		t.Errorf("Expected ID jane@example.com, got %s", info.ID)
	}
	if info.Summary != "Jane Smith" {
		t.Errorf("Expected summary 'Jane Smith', got %s", info.Summary)
	}
	if info.TimeZone != "America/Sao_Paulo" {
		t.Errorf("Expected time zone America/Sao_Paulo, got %s", info.TimeZone)
	}
	if info.AccessRole != "reader" {
		t.Errorf("Expected access role reader, got %s", info.AccessRole)
	}
	if info.Primary {
		t.Error("Expected non-primary calendar")
	}
}

func TestGetCalendar_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"Not Found"}}`)
	})

	_, err := client.GetCalendar(context.Background(), "ghost@example.com")
	if err == nil {
		t.Fatal("Expected error for unknown calendar")
	}
	if !IsNotFound(err) {
		t.Error("Expected IsNotFound to be true")
	}
}

func TestUpcomingEvents_AuditLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, eventsResponse)
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	client, err := NewClientWithInstrumentation(context.Background(), srv.Client(), Instrumentation{
		Audit:   instrumentation.NewAuditLogger(logger),
		Command: "report",
	}, option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewClientWithInstrumentation returned error: %v", err)
	}

	if _, err := client.UpcomingEvents(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("UpcomingEvents returned error: %v", err)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "operation_executed") {
		t.Errorf("Expected an audit entry, got %q", logged)
	}
	if !strings.Contains(logged, "example.com") {
		t.Errorf("Expected the calendar domain in the audit entry, got %q", logged)
	}

	// Default audit logging is anonymized: the raw calendar ID must not leak
	if strings.Contains(logged, "jane@example.com") {
		t.Errorf("Audit entry leaked the raw calendar ID: %q", logged)
	}
}

func TestToEventSummary(t *testing.T) {
	// A nil event converts to the zero summary
	summary := toEventSummary(nil)
	if summary.ID != "" {
		t.Errorf("Expected empty ID for nil event, got %s", summary.ID)
	}

	// An event without start and end keeps zero times
	summary = toEventSummary(&calendarapi.Event{Id: "evt-3", Summary: "No times"})
	if !summary.Start.IsZero() {
		t.Errorf("Expected zero start, got %v", summary.Start)
	}
	if got := summary.StartString(); got != "" {
		t.Errorf("Expected empty start string, got %q", got)
	}
}

func TestToCalendarInfo(t *testing.T) {
	info := toCalendarInfo(nil)
	if info.ID != "" {
		t.Errorf("Expected empty ID for nil calendar, got %s", info.ID)
	}
}
