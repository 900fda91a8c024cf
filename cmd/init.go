package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/settings"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the settings file and credential store",
		Long: `Write a starter settings.yml and create the store/ directory that holds
the OAuth client secrets and the cached token.

The settings file is never overwritten. The OAuth client secrets file
(credentials.json, type "Desktop app") must be downloaded from the Google
Cloud console and placed in the store directory by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
	return cmd
}

func runInit() error {
	if _, err := os.Stat(settingsPath); err == nil {
		return fmt.Errorf("settings file %s already exists, refusing to overwrite", settingsPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check settings file %s: %w", settingsPath, err)
	}

	if err := settings.Save(settingsPath, settings.Default()); err != nil {
		return err
	}

	storeDir := filepath.Dir(credentialsPath)
	if err := os.MkdirAll(storeDir, 0o700); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", storeDir, err)
	}
	if tokenDir := filepath.Dir(tokenPath); tokenDir != storeDir {
		if err := os.MkdirAll(tokenDir, 0o700); err != nil {
			return fmt.Errorf("failed to create token directory %s: %w", tokenDir, err)
		}
	}

	fmt.Printf("Created %s and %s%c\n", settingsPath, storeDir, os.PathSeparator)
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s and list the calendars to scan.\n", settingsPath)
	fmt.Printf("  2. Download OAuth client credentials (Desktop app) from the Google Cloud console and save them as %s.\n", credentialsPath)
	fmt.Println("  3. Run 'google-calendar-ooo-report auth' to authorize calendar access.")
	return nil
}
