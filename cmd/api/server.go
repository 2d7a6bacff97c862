package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-api/pkg/container"
)

// Serve chạy HTTP server cho tới khi nhận SIGINT/SIGTERM rồi shutdown gracefully
func Serve(ctx context.Context, c *container.Container) error {
	router := SetupRouter(c)

	// ========================================
	// CONFIGURE HTTP SERVER
	// ========================================
	port := c.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================
	// START SERVER (NON-BLOCKING)
	// ========================================
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", port).
			Str("env", c.Config.App.Environment).
			Msgf("Server starting, health check at http://localhost:%s/api/v1/health", port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ========================================
	// GRACEFUL SHUTDOWN
	// ========================================
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
