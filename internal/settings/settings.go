// Package settings loads and persists the report configuration from a YAML
// settings file. The file carries a single top-level "settings" mapping with
// the calendars to scan and the summary keywords that mark an event as out
// of office.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file location relative to the working directory.
const DefaultPath = "settings.yml"

// Settings holds the report configuration.
type Settings struct {
	// CalendarIDs lists the calendars to scan. Calendar identifiers are
	// usually email addresses; "primary" selects the authorized user's
	// own calendar.
	CalendarIDs []string `yaml:"calendar_id"`

	// Keywords lists the summary keywords that mark an event as out of
	// office. Matching is case-insensitive substring matching.
	Keywords []string `yaml:"keywords"`
}

// file wraps Settings under the top-level "settings" key. The pointer lets
// Load distinguish a missing key from an empty mapping.
type file struct {
	Settings *Settings `yaml:"settings"`
}

// Default returns the settings scaffold written by the init command.
func Default() *Settings {
	return &Settings{
		CalendarIDs: []string{"your-email@example.com"},
		Keywords:    []string{"vacation", "ooo", "out of office"},
	}
}

// Normalize trims whitespace from all entries and drops empty ones so a
// hand-edited file with stray blanks still behaves correctly. Keyword case
// is preserved; the filter lowercases at comparison time.
func (s *Settings) Normalize() {
	s.CalendarIDs = normalizeList(s.CalendarIDs)
	s.Keywords = normalizeList(s.Keywords)
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Load reads the settings file at path.
//
// Behavior:
//   - If the file does not exist, an error is returned that suggests
//     running the init command. The report never invents settings.
//   - If the file exists but has no top-level "settings" key, an error
//     is returned.
//   - Otherwise the settings are normalized and returned. A file with no
//     calendar identifiers (after normalization) is rejected: a run with
//     nothing to query is a configuration mistake, not an empty report.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New("settings path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file %s not found (run 'google-calendar-ooo-report init' to create one): %w", path, err)
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if f.Settings == nil {
		return nil, fmt.Errorf("settings file %s has no top-level 'settings' key", path)
	}

	f.Settings.Normalize()

	if len(f.Settings.CalendarIDs) == 0 {
		return nil, fmt.Errorf("settings file %s configures no calendars under 'calendar_id'", path)
	}

	return f.Settings, nil
}

// Save writes the given settings to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals under the top-level "settings" key.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, s *Settings) error {
	if path == "" {
		return errors.New("settings path is empty")
	}
	if s == nil {
		return errors.New("settings is nil")
	}

	s.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(file{Settings: s})
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp settings file: %w", err)
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to set settings file permissions: %w", err)
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace settings file %s: %w", path, err)
	}

	return nil
}

// Save is a convenience method that delegates to the package-level Save
// function.
func (s *Settings) Save(path string) error {
	return Save(path, s)
}
