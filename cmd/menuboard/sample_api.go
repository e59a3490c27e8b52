package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/menuboard/internal/metrics"
	"github.com/Lixing-Zhang/menuboard/internal/repository"
	"github.com/Lixing-Zhang/menuboard/internal/server"
	"github.com/Lixing-Zhang/menuboard/internal/service"
)

func newSampleAPICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample-api",
		Short: "Run the sample menu API with the built-in cafe catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			menuService := service.NewMenuService(repository.NewSampleMenuRepository())
			handler := server.NewSampleAPIRouter(menuService, metrics.New(), log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := cfg.Server.Host + ":" + cfg.SampleAPI.Port
			log.Info("starting sample menu api", "address", addr)

			srv := server.NewHTTPServer(addr, handler, cfg.Server)
			return server.Run(ctx, srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second, log)
		},
	}
}
