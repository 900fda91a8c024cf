package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/auth"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/settings"
)

// Paths and switches shared by all subcommands.
var (
	settingsPath    string
	credentialsPath string
	tokenPath       string
	debugMode       bool
	metricsAddr     string
)

// rootCmd represents the base command for the google-calendar-ooo-report application
var rootCmd = &cobra.Command{
	Use:   "google-calendar-ooo-report",
	Short: "Reports upcoming out-of-office events from Google Calendar",
	Long: `google-calendar-ooo-report fetches upcoming events from a configured set of
Google Calendars, filters them to out-of-office entries (by event type or by
summary keywords), and prints a per-calendar report.

Calendars and keywords are read from settings.yml; OAuth client credentials
and the cached token live under store/. Run 'init' once to scaffold both.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(debugMode)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "google-calendar-ooo-report version %s\n" .Version}}`)

	// If no subcommand is provided, run the report command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "report")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", settings.DefaultPath, "Path to the settings file")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", auth.DefaultCredentialsPath, "Path to the OAuth client secrets file")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", auth.DefaultTokenPath, "Path to the cached token file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address for the duration of the run (e.g. :9090). Empty disables the listener. Can also use METRICS_ADDR env var.")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCalendarsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
}
