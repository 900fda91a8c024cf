package auth

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

const (
	// DefaultCredentialsPath is the OAuth client secrets file location
	// relative to the working directory.
	DefaultCredentialsPath = "store/credentials.json"

	// DefaultTokenPath is the cached token file location relative to the
	// working directory.
	DefaultTokenPath = "store/token.json"
)

// Scopes returns the OAuth scopes the report needs. Changing scopes
// invalidates cached tokens, so users must delete the token file after
// modifying this list.
func Scopes() []string {
	return []string{calendar.CalendarReadonlyScope}
}

// LoadConfig reads the OAuth client secrets file (the credentials.json
// downloaded from the Google Cloud console) and builds the oauth2 config
// for the installed-app flow.
func LoadConfig(path string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, NewAuthError(StepLoad, fmt.Errorf("unable to read client secret file %s: %w", path, err))
	}

	cfg, err := google.ConfigFromJSON(b, Scopes()...)
	if err != nil {
		return nil, NewAuthError(StepLoad, fmt.Errorf("unable to parse client secret file %s: %w", path, err))
	}

	return cfg, nil
}
