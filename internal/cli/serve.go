package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarkov/verascope/internal/notify"
	"github.com/dmarkov/verascope/internal/pipeline"
	"github.com/dmarkov/verascope/internal/server"
	"github.com/dmarkov/verascope/internal/storage"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analysis pipeline over HTTP:
- Anonymous fact-check, bias and media endpoints under /api
- Authenticated media upload, stored results and admin metrics under /api/v1
- Results persisted to the configured database

Example:
  verascope serve
  verascope serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	store, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	pipe.SetStore(store)
	if cfg.Notify.WebhookURL != "" {
		pipe.SetNotifier(notify.NewWebhook(cfg.Notify))
	} else {
		pipe.SetNotifier(notify.Log{})
	}

	engine := server.New(cfg.Server, pipe, store)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
