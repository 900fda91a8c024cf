package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

// DefaultFlowTimeout bounds how long the flow waits for the browser redirect.
// A scheduled run that needs interactive authorization must fail instead of
// hanging forever.
const DefaultFlowTimeout = 5 * time.Minute

// Flow obtains a brand-new token interactively. The report logic never talks
// to the authorization endpoint directly; it only sees this interface, so
// tests can substitute a canned token source.
type Flow interface {
	Obtain(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// LocalServerFlow implements Flow with the installed-app loopback redirect:
// it binds an ephemeral localhost port, sends the user to the consent page,
// and captures the authorization code from the redirect. The authorization
// request carries a PKCE S256 challenge and a random state parameter.
type LocalServerFlow struct {
	// Addr is the loopback listen address. Defaults to "127.0.0.1:0",
	// which picks any free port.
	Addr string

	// Out receives the authorization URL prompt. Defaults to os.Stderr so
	// the prompt never mixes with the report on stdout.
	Out io.Writer

	// OpenBrowser controls whether the flow tries to launch the system
	// browser. The URL is printed either way.
	OpenBrowser bool

	// Timeout bounds the wait for the redirect. Zero means DefaultFlowTimeout.
	Timeout time.Duration
}

// callbackResult carries the outcome of the loopback redirect.
type callbackResult struct {
	code string
	err  error
}

// Obtain runs the authorization flow and returns the exchanged token.
func (f *LocalServerFlow) Obtain(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	addr := f.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	out := f.Out
	if out == nil {
		out = os.Stderr
	}
	timeout := f.Timeout
	if timeout == 0 {
		timeout = DefaultFlowTimeout
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("unable to bind loopback listener on %s: %w", addr, err)
	}
	defer listener.Close()

	verifier, err := GenerateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("unable to generate PKCE verifier: %w", err)
	}
	state, err := GenerateState()
	if err != nil {
		return nil, fmt.Errorf("unable to generate state parameter: %w", err)
	}

	// Work on a copy so the caller's config keeps its redirect URL.
	flowCfg := *cfg
	flowCfg.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr().String())

	authURL := flowCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("code_challenge", GenerateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		res := parseCallback(r, state)
		if res.err != nil {
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		} else {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = fmt.Fprint(w, "<html><body>Authorization complete. You can close this window.</body></html>")
		}

		// Only the first redirect counts; drop duplicates.
		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		// Serve returns ErrServerClosed on shutdown; anything else has
		// already surfaced through the redirect wait below.
		_ = srv.Serve(listener)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(out, "Go to the following link in your browser to authorize access:\n%v\n", authURL)

	if f.OpenBrowser {
		if err := openBrowser(authURL); err != nil {
			slog.Debug("unable to open browser, continuing with printed URL", "error", err)
		}
	}

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		code = res.code
	case <-time.After(timeout):
		return nil, fmt.Errorf("timed out after %s waiting for authorization", timeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization canceled: %w", ctx.Err())
	}

	tok, err := flowCfg.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}

	return tok, nil
}

// parseCallback validates the redirect request and extracts the
// authorization code.
func parseCallback(r *http.Request, wantState string) callbackResult {
	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		return callbackResult{err: fmt.Errorf("authorization denied: %s", errCode)}
	}

	if state := q.Get("state"); state != wantState {
		return callbackResult{err: fmt.Errorf("state parameter mismatch, possible CSRF")}
	}

	code := q.Get("code")
	if code == "" {
		return callbackResult{err: fmt.Errorf("redirect carried no authorization code")}
	}

	return callbackResult{code: code}
}

// openBrowser launches the system browser for the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return cmd.Start()
}
