package auth

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/instrumentation"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
)

// Manager resolves the credential chain for a run: cached token, silent
// refresh, then the interactive flow. Every path that produces a new token
// persists it to TokenPath before returning; a token reused from the cache
// leaves the file untouched.
type Manager struct {
	// Config is the OAuth client configuration loaded from the
	// credentials file.
	Config *oauth2.Config

	// TokenPath is where the token cache lives.
	TokenPath string

	// Flow runs the interactive authorization when no usable token
	// exists. Defaults to a LocalServerFlow that opens the browser.
	Flow Flow

	// Metrics records authorization outcomes. May be nil.
	Metrics *instrumentation.Metrics
}

// NewManager returns a Manager with the default interactive flow.
func NewManager(cfg *oauth2.Config, tokenPath string) *Manager {
	return &Manager{
		Config:    cfg,
		TokenPath: tokenPath,
		Flow:      &LocalServerFlow{OpenBrowser: true},
	}
}

// Credentials returns a token usable for API calls, walking the chain:
// a valid cached token is reused as-is, an expired token with a refresh
// token is refreshed silently, anything else goes through the interactive
// flow. A cached token that fails to refresh is a hard error rather than a
// silent re-authorization, so the user learns their grant was revoked
// instead of being surprised by a browser window.
func (m *Manager) Credentials(ctx context.Context) (*oauth2.Token, error) {
	tok, err := LoadToken(m.TokenPath)
	if err != nil {
		return nil, err
	}
	return m.ensure(ctx, tok)
}

// Reauthorize discards the cached token and runs the interactive flow
// unconditionally. The fresh token replaces the cache.
func (m *Manager) Reauthorize(ctx context.Context) (*oauth2.Token, error) {
	return m.ensure(ctx, nil)
}

// Client returns an HTTP client that authorizes requests with the resolved
// token. The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol
// errors with the Google APIs.
func (m *Manager) Client(ctx context.Context) (*http.Client, error) {
	tok, err := m.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, m.Config.TokenSource(ctx, tok))

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

// ensure walks the credential chain starting from tok, which may be nil
// when no cache exists or the caller forces re-authorization.
func (m *Manager) ensure(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	if tok != nil && tok.Valid() {
		slog.Debug("using cached access token",
			slog.String("token", logging.SanitizeToken(tok.AccessToken)))
		return tok, nil
	}

	// Refresh only applies to a token that was once issued and has aged
	// out. A cache with no access token means authorization never
	// completed, which is the flow's job.
	if tok != nil && tok.RefreshToken != "" && tok.AccessToken != "" {
		refreshed, err := m.Config.TokenSource(ctx, tok).Token()
		if err != nil {
			m.Metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
			return nil, NewAuthError(StepRefresh, err)
		}
		m.Metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)

		slog.Debug("access token refreshed",
			slog.String("token", logging.SanitizeToken(refreshed.AccessToken)))

		if err := SaveToken(m.TokenPath, refreshed); err != nil {
			return nil, err
		}
		return refreshed, nil
	}

	flow := m.Flow
	if flow == nil {
		flow = &LocalServerFlow{OpenBrowser: true}
	}

	slog.Debug("no usable cached token, starting authorization flow")

	fresh, err := flow.Obtain(ctx, m.Config)
	if err != nil {
		m.Metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, NewAuthError(StepFlow, err)
	}
	m.Metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)

	slog.Debug("authorization flow completed",
		slog.String("token", logging.SanitizeToken(fresh.AccessToken)))

	if err := SaveToken(m.TokenPath, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}
