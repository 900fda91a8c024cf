// Package calendar provides a read-only client for the Google Calendar API
// and the out-of-office filter applied to its events.
//
// The client covers the two queries this tool needs: the next upcoming
// events of a calendar (recurring events expanded, ordered by start time)
// and calendar metadata for access probing. Every API call is wrapped with
// a typed APIError and, when wired, recorded as metrics, a client span and
// an audit entry.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx, httpClient)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.UpcomingEvents(ctx, "primary")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ooo := calendar.FilterOutOfOffice(events, []string{"vacation", "ooo"})
package calendar
