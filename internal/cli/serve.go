package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/cursorlog/internal/config"
	"github.com/rickgao/cursorlog/internal/connection"
	"github.com/rickgao/cursorlog/internal/database"
	"github.com/rickgao/cursorlog/internal/metrics"
	"github.com/rickgao/cursorlog/internal/version"
	"github.com/rickgao/cursorlog/internal/web"
	"github.com/rickgao/cursorlog/internal/writer"
)

// ShutdownTimeout bounds how long serve waits for sessions and writes to drain.
const ShutdownTimeout = 30 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept pointer events and store them",
		Long: `Start the collector.

Serves the entry page at /, static assets under /static/, a health check at
/health and the event channel at server.namespace. Prometheus metrics are
served on a separate port. SIGINT or SIGTERM starts a graceful shutdown.

Example:
  collector serve --config configs/collector.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidate(rootOpts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := newLogger(cfg.Logging, cmd.OutOrStdout())
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

// serve runs the collector until ctx is cancelled or a listener fails.
func serve(ctx context.Context, cfg *config.CollectorConfig, logger *slog.Logger) error {
	logger.Info("starting collector",
		"version", version.Version,
		"commit", version.Commit,
		"instance_id", cfg.Instance.ID,
	)

	engine, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	if cfg.Database.SkipProvision {
		logger.Info("schema provisioning skipped")
	} else if err := engine.Provision(ctx); err != nil {
		return err
	}

	collector := metrics.New()

	coordWriter := writer.NewCoordinateWriter(writer.WriterConfig{
		Concurrency:  cfg.Writers.Concurrency,
		WriteTimeout: cfg.Writers.WriteTimeout,
	}, engine, logger, writer.WithObserver(collector))

	manager := connection.NewManager(connection.ManagerConfig{
		Namespace: cfg.Server.Namespace,
		Session: connection.SessionConfig{
			PingInterval:    cfg.Connections.PingInterval,
			PongTimeout:     cfg.Connections.PongTimeout,
			WriteTimeout:    cfg.Connections.WriteTimeout,
			MaxMessageBytes: cfg.Connections.MaxMessageBytes,
		},
	}, coordWriter, logger, connection.WithObserver(collector))

	handler, err := web.NewHandler(web.Config{
		Namespace:   cfg.Server.Namespace,
		TemplateDir: cfg.Server.TemplateDir,
		StaticDir:   cfg.Server.StaticDir,
	}, manager, engine, manager, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle(cfg.Metrics.Path, collector.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: metricsMux,
	}

	// Bind before reporting ready so a busy port fails fast.
	httpLn, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	metricsLn, err := net.Listen("tcp", metricsServer.Addr)
	if err != nil {
		httpLn.Close()
		return fmt.Errorf("listen %s: %w", metricsServer.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(httpLn); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := metricsServer.Serve(metricsLn); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		// Sessions drain before the writer stops, so their last inserts are waited on.
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", "error", err)
		}
		if err := manager.Stop(shutdownCtx); err != nil {
			logger.Warn("connection manager shutdown", "error", err)
		}
		if err := coordWriter.Stop(shutdownCtx); err != nil {
			logger.Warn("writer shutdown", "error", err)
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
		return nil
	})

	logger.Info("collector running",
		"addr", httpLn.Addr().String(),
		"namespace", cfg.Server.Namespace,
		"driver", engine.Driver(),
		"metrics_url", fmt.Sprintf("http://localhost:%d%s", cfg.Metrics.Port, cfg.Metrics.Path),
	)

	err = g.Wait()
	logger.Info("collector stopped")
	return err
}
