package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/beoflow/internal/handler"
	"github.com/Shivanand-hulikatti/beoflow/internal/notify"
	"github.com/Shivanand-hulikatti/beoflow/internal/service"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	// ── Wire up layers ───────────────────────────────────────────────────
	eventSvc := service.NewEventService(a.events)
	settingsSvc := service.NewSettingsService(a.settings)
	distributor := service.NewDistributor(
		a.events, a.settings,
		notify.LogNotifier{Log: a.log},
		a.cfg.DistributionDelay,
		a.log,
	)

	router := handler.NewRouter(handler.Routes{
		Events:   handler.NewEventHandler(eventSvc, distributor),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Health:   handler.HealthCheck(a.events, a.settings),
		Log:      a.log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("server listening on http://localhost:%s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}
