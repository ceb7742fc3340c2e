package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/handlers"
	"github.com/mlm272/maggiemayer-portfolio/internal/logging"
	"github.com/mlm272/maggiemayer-portfolio/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		Long: `Run the portfolio web server.

Examples:
  # Serve with defaults (:8080, data/, static/)
  portfolio serve

  # Serve under a sub-path with a config file
  PORTFOLIO_SERVER_BASE_PATH=/maggiemayer-portfolio portfolio serve --config portfolio.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger, err := logging.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			messages, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer messages.Close()

			handler, err := handlers.SetupRoutes(cfg, logger, messages)
			if err != nil {
				return fmt.Errorf("failed to set up routes: %w", err)
			}

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      handler,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("addr", srv.Addr),
					zap.String("base_path", cfg.Server.BasePath),
					zap.Int("projects", len(cfg.Projects.Projects)),
				)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", zap.Error(err))
				return err
			}
			logger.Info("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
