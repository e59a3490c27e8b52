// Package web embeds the page's static assets: the navigation script, the
// stylesheet and the placeholder image.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

//go:embed static/js/*.js static/css/*.css static/img/*.svg
var staticFS embed.FS

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static/ is part of the embed pattern
		panic(err)
	}
	return sub
}

// Handler serves the assets; mount it with http.StripPrefix.
func Handler() http.Handler {
	return http.FileServer(http.FS(Static()))
}

// WriteTo copies every asset under dir, keeping the tree layout.
func WriteTo(dir string) error {
	assets := Static()
	return fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := fs.ReadFile(assets, path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", target, err)
		}
		return nil
	})
}
