package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/storefront-state/internal/app"
	"github.com/nikolayk812/storefront-state/internal/httpapi"
	"github.com/nikolayk812/storefront-state/internal/shutdown"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stores over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if cmd.Flags().Changed("debug") {
				cfg.Display.DebugMode = debug
			}

			ctx, cancel := shutdown.WithSignals(cmd.Context())
			defer cancel()

			root, err := app.New(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("app.New: %w", err)
			}
			defer root.Close()

			srv := &http.Server{
				Addr: cfg.HTTPAddr,
				Handler: httpapi.NewRouter(httpapi.Deps{
					Cart:     root.Cart,
					Session:  root.Session,
					Catalog:  root.Catalog,
					Display:  root.Display,
					Gatherer: root.Registry,
					Log:      log,
				}),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("http starting", slog.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("srv.ListenAndServe: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			log.Info("shutdown requested")

			// end websocket streams before waiting on in-flight requests
			root.Close()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stopCancel()

			if err := srv.Shutdown(stopCtx); err != nil {
				log.Warn("graceful stop timeout, forcing stop", slog.Any("err", err))
				_ = srv.Close()
			}

			log.Info("bye")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address, overrides HTTP_ADDR")
	cmd.Flags().BoolVar(&debug, "debug", true, "expose debug mode to clients, overrides DEBUG_MODE")

	return cmd
}
