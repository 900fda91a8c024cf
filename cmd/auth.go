package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/auth"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Google Calendar API",
		Long: `Run the credential chain explicitly: reuse the cached token when it is
still valid, refresh it silently when it has expired, or walk through the
interactive browser authorization. The resulting token is cached for later
runs.

With --force the cached token is ignored and the interactive authorization
always runs; use it when the grant was revoked or the cache is stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstrumented("auth", func(ctx context.Context, run *instrumentedRun) error {
				return runAuth(ctx, run, force)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Discard the cached token and re-run the interactive authorization")
	return cmd
}

func runAuth(ctx context.Context, run *instrumentedRun, force bool) error {
	oauthCfg, err := auth.LoadConfig(credentialsPath)
	if err != nil {
		return err
	}

	manager := auth.NewManager(oauthCfg, tokenPath)
	manager.Metrics = run.metrics

	var tok *oauth2.Token
	if force {
		tok, err = manager.Reauthorize(ctx)
	} else {
		tok, err = manager.Credentials(ctx)
	}
	if err != nil {
		return err
	}

	slog.Debug("authorization resolved",
		slog.String("token", logging.SanitizeToken(tok.AccessToken)))

	fmt.Printf("Authorization successful. Token cached at %s.\n", tokenPath)
	return nil
}
