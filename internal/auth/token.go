package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// LoadToken reads a cached token from the given path.
//
// A missing file is not an error: it returns (nil, nil) and the caller runs
// the authorization flow. A file that exists but cannot be parsed is fatal,
// because silently discarding a cache that may hold a live refresh token
// would force a surprise re-authorization.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, NewAuthError(StepLoad, fmt.Errorf("unable to read token file %s: %w", path, err))
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, NewAuthError(StepLoad, fmt.Errorf("unable to parse token file %s (delete it to re-authorize): %w", path, err))
	}

	return &tok, nil
}

// SaveToken writes the token to the given path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600: the file holds live
//     access and refresh tokens.
func SaveToken(path string, tok *oauth2.Token) error {
	if tok == nil {
		return NewAuthError(StepSave, errors.New("token is nil"))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to create token directory %s: %w", dir, err))
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to marshal token: %w", err))
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".token-*.tmp")
	if err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to create temp token file: %w", err))
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return NewAuthError(StepSave, fmt.Errorf("unable to write temp token file: %w", err))
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return NewAuthError(StepSave, fmt.Errorf("unable to sync temp token file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to close temp token file: %w", err))
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to set token file permissions: %w", err))
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return NewAuthError(StepSave, fmt.Errorf("unable to replace token file %s: %w", path, err))
	}

	return nil
}
