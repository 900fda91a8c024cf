// Package cmd implements the command-line interface for
// google-calendar-ooo-report.
//
// This package provides the following commands:
//   - report: Print upcoming out-of-office events for the configured calendars
//   - auth: Authorize access to the Google Calendar API
//   - calendars: Show metadata for the configured calendars
//   - init: Scaffold the settings file and credential store
//   - version: Display version information
//
// The report command is the default command when no subcommand is specified.
package cmd
