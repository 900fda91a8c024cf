package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/calendar"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/settings"
)

func newCalendarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "Show metadata for the configured calendars",
		Long: `Look up every calendar listed in the settings file in the authorized
user's calendar list and print its summary, time zone, and access role.

Useful to verify the settings before a report run: a calendar the user is
not subscribed to fails here with a clear error instead of failing halfway
through a report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstrumented("calendars", runCalendars)
		},
	}
	return cmd
}

func runCalendars(ctx context.Context, run *instrumentedRun) error {
	cfg, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	client, err := newCalendarClient(ctx, run, "calendars")
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, calendarID := range cfg.CalendarIDs {
		info, err := client.GetCalendar(ctx, calendarID)
		if err != nil {
			if calendar.IsNotFound(err) {
				return fmt.Errorf("calendar %s is not in the authorized user's calendar list: %w", calendarID, err)
			}
			return err
		}

		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", calendarID)
		fmt.Fprintf(&b, "  summary: %s\n", info.Summary)
		if info.Description != "" {
			fmt.Fprintf(&b, "  description: %s\n", info.Description)
		}
		fmt.Fprintf(&b, "  time zone: %s\n", info.TimeZone)
		fmt.Fprintf(&b, "  access role: %s\n", info.AccessRole)
		if info.Primary {
			b.WriteString("  primary calendar\n")
		}
	}

	_, err = io.WriteString(os.Stdout, b.String())
	return err
}
