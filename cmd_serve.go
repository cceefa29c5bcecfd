package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	uploadMaxAge    = 2 * time.Hour
	janitorInterval = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, newApp(cfg, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, a *app) error {
	if ds, err := a.data.Get(); err != nil {
		a.log.Warn("dataset not loaded, serving 503 until reload", "path", a.data.Path(), "error", err)
	} else {
		a.log.Info("dataset loaded", "path", a.data.Path(), "rows", len(ds.Readings), "skipped", ds.Skipped)
	}

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.server().routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanUploads(ctx, a)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// cleanUploads removes stale uploaded datasets until ctx is done.
func cleanUploads(ctx context.Context, a *app) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := removeOldFiles(a.cfg.UploadDir, time.Now().Add(-uploadMaxAge), a.data.Path())
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				a.log.Warn("clean uploads", "dir", a.cfg.UploadDir, "error", err)
			}
		}
	}
}
