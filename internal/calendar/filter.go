package calendar

import "strings"

// EventTypeOutOfOffice is the event type the Calendar API assigns to
// out-of-office blocks created through the Google Calendar UI.
const EventTypeOutOfOffice = "outOfOffice"

// IsOutOfOffice reports whether an event counts as out of office: either the
// API marks it with the outOfOffice event type, or its summary contains one
// of the keywords. Keyword matching is case-insensitive substring matching,
// so "vacation" matches "Team Vacation Week". Events without a summary can
// only match through the event type.
func IsOutOfOffice(event EventSummary, keywords []string) bool {
	if event.EventType == EventTypeOutOfOffice {
		return true
	}

	summary := strings.ToLower(event.Summary)
	for _, keyword := range keywords {
		if strings.Contains(summary, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}

// FilterOutOfOffice returns the events matching IsOutOfOffice, preserving
// their order. The result is a fresh slice; the input is never modified.
func FilterOutOfOffice(events []EventSummary, keywords []string) []EventSummary {
	var matched []EventSummary
	for _, event := range events {
		if IsOutOfOffice(event, keywords) {
			matched = append(matched, event)
		}
	}
	return matched
}
