package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/menuboard/internal/config"
	"github.com/Lixing-Zhang/menuboard/internal/render"
	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile string
	envFile    string
}

// NewRootCommand creates the root command for the menuboard application
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "menuboard",
		Short: "Menu board - renders a restaurant menu from the menu API",
		Long: `Menu board fetches categories and menu items from the menu REST API and
renders them as a page with category tabs. It can serve the page, write it
out as static files, or run a sample menu API for local development.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file to load (default .env when present)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newSampleAPICommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// load reads the configuration and installs the default logger
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(config.Sources{
		EnvFile:    o.envFile,
		ConfigFile: o.configFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	return cfg, log, nil
}

// rendererOptions maps the display configuration onto renderer options
func rendererOptions(cfg *config.Config) render.Options {
	return render.Options{
		Locale:           cfg.Display.Locale,
		CurrencySymbol:   cfg.Display.CurrencySymbol,
		PlaceholderImage: cfg.Display.PlaceholderImage,
		Title:            cfg.Display.Title,
		Labels:           render.LabelsFor(cfg.Display.Locale).With(configuredLabels(cfg.Display.Labels)),
	}
}

func configuredLabels(l config.LabelsConfig) render.Labels {
	return render.Labels{
		All:         l.All,
		Home:        l.Home,
		MenuHeading: l.MenuHeading,
		Empty:       l.Empty,
		SoldOut:     l.SoldOut,
		Loading:     l.Loading,
		Error:       l.Error,
		Retry:       l.Retry,
	}
}
