package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/auth"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/calendar"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/report"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/settings"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print upcoming out-of-office events for the configured calendars",
		Long: `Fetch upcoming events for every calendar listed in the settings file,
filter them to out-of-office entries, and print a per-calendar report.

An event counts as out of office when its event type is "outOfOffice" or its
summary contains one of the configured keywords (case-insensitive). Calendars
with no upcoming events are left out of the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstrumented("report", runReport)
		},
	}
	return cmd
}

func runReport(ctx context.Context, run *instrumentedRun) error {
	cfg, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	client, err := newCalendarClient(ctx, run, "report")
	if err != nil {
		return err
	}

	slog.Debug("building report", logging.Count(len(cfg.CalendarIDs)))

	rep, err := report.Build(ctx, client, cfg, run.metrics)
	if err != nil {
		return err
	}

	return report.Render(os.Stdout, rep)
}

// newCalendarClient resolves the credential chain and builds the calendar
// client with the run's instrumentation attached.
func newCalendarClient(ctx context.Context, run *instrumentedRun, command string) (*calendar.Client, error) {
	oauthCfg, err := auth.LoadConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	manager := auth.NewManager(oauthCfg, tokenPath)
	manager.Metrics = run.metrics

	httpClient, err := manager.Client(ctx)
	if err != nil {
		return nil, err
	}

	return calendar.NewClientWithInstrumentation(ctx, httpClient, calendar.Instrumentation{
		Metrics: run.metrics,
		Audit:   run.audit,
		Command: command,
	})
}
