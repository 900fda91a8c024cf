package report

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the report as text: a heading per calendar and one line per
// event with its start, summary and event type. Calendars keep their
// configured order, events their API order.
func Render(w io.Writer, rep *Report) error {
	var b strings.Builder

	if rep.Empty() {
		b.WriteString("No upcoming events found for any configured calendar.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, cal := range rep.Calendars {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", cal.CalendarID)

		if len(cal.Events) == 0 {
			b.WriteString("  no out-of-office events\n")
			continue
		}

		for _, event := range cal.Events {
			fmt.Fprintf(&b, "  %s  %s", event.StartString(), event.Summary)
			if event.EventType != "" {
				fmt.Fprintf(&b, " (%s)", event.EventType)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
