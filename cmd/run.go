package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paulodiovani/google-calendar-ooo-report/internal/instrumentation"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/logging"
	"github.com/paulodiovani/google-calendar-ooo-report/internal/server"
)

// instrumentedRun bundles what a command pass receives from the
// instrumentation bootstrap. Metrics is never nil; a disabled provider
// hands out a no-op recorder. Audit is nil when instrumentation is off.
type instrumentedRun struct {
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
}

// runInstrumented wraps one command pass with the instrumentation
// lifecycle: provider setup, the optional per-run metrics listener, a root
// span, and the run counter. Provider shutdown is the only flush point for
// a one-shot process, so it must complete before the process exits.
func runInstrumented(command string, fn func(ctx context.Context, run *instrumentedRun) error) error {
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation configuration: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		// Use a fresh context: the signal context may already be canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	addr := metricsAddr
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}

	if addr != "" && provider.Enabled() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm the metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			slog.Debug("metrics server ready", slog.String("addr", metricsServer.Addr()))
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	run := &instrumentedRun{
		metrics: provider.Metrics(),
	}
	if provider.Enabled() {
		run.audit = instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging)
	}

	ctx, span := instrumentation.StartCommandSpan(ctx, command)
	defer span.End()

	start := time.Now()
	err = fn(ctx, run)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		run.metrics.RecordReportRun(ctx, command, instrumentation.StatusError, time.Since(start))
		return err
	}

	instrumentation.SetSpanSuccess(span)
	run.metrics.RecordReportRun(ctx, command, instrumentation.StatusSuccess, time.Since(start))
	return nil
}
