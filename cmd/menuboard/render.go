package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/menuboard/internal/config"
	"github.com/Lixing-Zhang/menuboard/internal/display"
	"github.com/Lixing-Zhang/menuboard/internal/menuapi"
	"github.com/Lixing-Zhang/menuboard/internal/render"
	"github.com/Lixing-Zhang/menuboard/internal/web"
)

const staticDir = "static"

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var (
		outDir   string
		category int64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the menu page and its assets as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			var selected *int64
			if cmd.Flags().Changed("category") {
				if category <= 0 {
					return fmt.Errorf("--category must be a positive id, got %d", category)
				}
				selected = &category
			}

			client, err := menuapi.NewClient(cfg.Upstream.BaseURL,
				time.Duration(cfg.Upstream.Timeout)*time.Second,
				menuapi.WithLogger(log),
			)
			if err != nil {
				return fmt.Errorf("failed to create menu api client: %w", err)
			}

			return renderStatic(cmd.Context(), cfg, client, outDir, selected, log)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "dist", "directory to write index.html and static/ into")
	cmd.Flags().Int64Var(&category, "category", 0, "category selected when the page opens")

	return cmd
}

// renderStatic loads every menu item once and writes a page that filters in
// the browser, next to a copy of the embedded assets.
func renderStatic(ctx context.Context, cfg *config.Config, source display.Source, outDir string, selected *int64, log *slog.Logger) error {
	opts := rendererOptions(cfg)
	opts.Mode = render.ModeStatic
	opts.BasePath = "index.html"
	opts.AssetPrefix = staticDir
	if strings.HasPrefix(opts.PlaceholderImage, "/static/") {
		opts.PlaceholderImage = strings.TrimPrefix(opts.PlaceholderImage, "/")
	}

	renderer, err := render.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	ctrl := display.NewController(source, log)
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("failed to load menu data: %w", err)
	}
	// the grid keeps every item; the selection only marks the opening tab
	ctrl.Select(selected)

	var buf bytes.Buffer
	if err := renderer.RenderPage(&buf, ctrl.Snapshot()); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	page := filepath.Join(outDir, "index.html")
	if err := os.WriteFile(page, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", page, err)
	}
	if err := web.WriteTo(filepath.Join(outDir, staticDir)); err != nil {
		return err
	}

	log.Info("rendered static menu page", "path", page, "category_id", selected)
	return nil
}
