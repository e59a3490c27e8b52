package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/menuboard/internal/menuapi"
	"github.com/Lixing-Zhang/menuboard/internal/metrics"
	"github.com/Lixing-Zhang/menuboard/internal/render"
	"github.com/Lixing-Zhang/menuboard/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the menu page and its fragments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			log.Info("starting menu board",
				"port", cfg.Server.Port,
				"host", cfg.Server.Host,
				"menu_api", cfg.Upstream.BaseURL,
				"log_level", cfg.LogLevel,
			)

			rec := metrics.New()
			upstreamTimeout := time.Duration(cfg.Upstream.Timeout) * time.Second

			client, err := menuapi.NewClient(cfg.Upstream.BaseURL, upstreamTimeout,
				menuapi.WithObserver(rec),
				menuapi.WithLogger(log),
			)
			if err != nil {
				return fmt.Errorf("failed to create menu api client: %w", err)
			}

			renderer, err := render.New(rendererOptions(cfg))
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}

			handler := server.NewDisplayRouter(server.DisplayDeps{
				Upstream:       client,
				Renderer:       renderer,
				Metrics:        rec,
				Logger:         log,
				AllowedOrigins: cfg.CORS.AllowedOrigins,
				ReadyTimeout:   upstreamTimeout,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewHTTPServer(cfg.Addr(), handler, cfg.Server)
			return server.Run(ctx, srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second, log)
		},
	}
}
