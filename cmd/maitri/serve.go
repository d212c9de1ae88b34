package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/easeaico/maitri/internal/oversight"
	"github.com/easeaico/maitri/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the oversight sweeper",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().Bool("no-oversight", false, "disable the periodic oversight sweep")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := wireEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	handler, err := server.NewHandler(d.orchestrator, d.reporter)
	if err != nil {
		return err
	}
	app := server.NewApp(handler, d.registry)

	if disabled, _ := cmd.Flags().GetBool("no-oversight"); !disabled {
		sweeper := oversight.NewSweeper(d.store, d.reporter, d.publisher(ctx), d.metrics)
		if err := sweeper.Start(cfg.OversightInterval); err != nil {
			return err
		}
		defer func() {
			if err := sweeper.Stop(); err != nil {
				slog.Warn("failed to stop oversight sweeper", "error", err.Error())
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}
