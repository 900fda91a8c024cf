package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	content := `settings:
  calendar_id:
    - jane@example.com
    - team@example.com
  keywords:
    - vacation
    - ooo
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(s.CalendarIDs) != 2 {
		t.Fatalf("expected 2 calendar IDs, got %d", len(s.CalendarIDs))
	}
	if s.CalendarIDs[0] != "jane@example.com" || s.CalendarIDs[1] != "team@example.com" {
		t.Errorf("unexpected calendar IDs: %v", s.CalendarIDs)
	}

	if len(s.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(s.Keywords))
	}
	if s.Keywords[0] != "vacation" || s.Keywords[1] != "ooo" {
		t.Errorf("unexpected keywords: %v", s.Keywords)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing settings file")
	}
	if !strings.Contains(err.Error(), "init") {
		t.Errorf("error should suggest the init command, got %q", err.Error())
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoad_NoSettingsKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	content := `calendar_id:
  - jane@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing top-level settings key")
	}
	if !strings.Contains(err.Error(), "settings") {
		t.Errorf("error should mention the settings key, got %q", err.Error())
	}
}

func TestLoad_NoCalendars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	content := `settings:
  calendar_id:
    - ""
  keywords:
    - vacation
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for settings without calendars")
	}
	if !strings.Contains(err.Error(), "calendar_id") {
		t.Errorf("error should mention calendar_id, got %q", err.Error())
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	if err := os.WriteFile(path, []byte("settings: [unclosed"), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_NormalizesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	content := `settings:
  calendar_id:
    - "  jane@example.com  "
    - ""
  keywords:
    - "  Vacation "
    - "   "
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(s.CalendarIDs) != 1 || s.CalendarIDs[0] != "jane@example.com" {
		t.Errorf("expected trimmed calendar IDs, got %v", s.CalendarIDs)
	}
	// Keyword case is preserved; the filter lowercases at comparison time
	if len(s.Keywords) != 1 || s.Keywords[0] != "Vacation" {
		t.Errorf("expected trimmed keywords with case preserved, got %v", s.Keywords)
	}
}

func TestNormalize(t *testing.T) {
	s := &Settings{
		CalendarIDs: []string{" a@example.com ", "", "b@example.com"},
		Keywords:    []string{"", " vacation ", "ooo"},
	}

	s.Normalize()

	if len(s.CalendarIDs) != 2 {
		t.Errorf("expected 2 calendar IDs after normalize, got %v", s.CalendarIDs)
	}
	if len(s.Keywords) != 2 {
		t.Errorf("expected 2 keywords after normalize, got %v", s.Keywords)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.yml")

	s := &Settings{
		CalendarIDs: []string{"jane@example.com"},
		Keywords:    []string{"vacation"},
	}

	if err := Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("settings file permissions = %o, want 0600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}
	if len(loaded.CalendarIDs) != 1 || loaded.CalendarIDs[0] != "jane@example.com" {
		t.Errorf("round trip lost calendar IDs: %v", loaded.CalendarIDs)
	}
	if len(loaded.Keywords) != 1 || loaded.Keywords[0] != "vacation" {
		t.Errorf("round trip lost keywords: %v", loaded.Keywords)
	}
}

func TestSave_NilSettings(t *testing.T) {
	if err := Save("settings.yml", nil); err == nil {
		t.Error("expected error for nil settings")
	}
}

func TestSave_EmptyPath(t *testing.T) {
	if err := Save("", Default()); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSave_Method(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	s := Default()
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}

func TestDefault(t *testing.T) {
	s := Default()

	if len(s.CalendarIDs) == 0 {
		t.Error("default settings should include a calendar placeholder")
	}
	if len(s.Keywords) == 0 {
		t.Error("default settings should include keywords")
	}
}
