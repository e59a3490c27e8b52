package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/menuboard/internal/config"
	"github.com/Lixing-Zhang/menuboard/internal/models"
	"github.com/Lixing-Zhang/menuboard/pkg/logger"
)

type staticSource struct {
	err       error
	menuCalls []*int64
}

func (s *staticSource) Categories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "커피"}, {ID: 3, Name: "디저트"}}, nil
}

func (s *staticSource) Menus(ctx context.Context, categoryID *int64) ([]models.MenuItem, error) {
	s.menuCalls = append(s.menuCalls, categoryID)
	if s.err != nil {
		return nil, s.err
	}
	return []models.MenuItem{
		{ID: 1, Name: "아메리카노", Price: 4500, IsAvailable: true, CategoryID: 1},
		{ID: 11, Name: "치즈케이크", Price: 6000, IsAvailable: false, CategoryID: 3},
	}, nil
}

func TestRenderStatic(t *testing.T) {
	dir := t.TempDir()
	src := &staticSource{}
	selected := int64(3)

	err := renderStatic(context.Background(), config.Default(), src, dir, &selected, logger.New("error"))
	require.NoError(t, err)

	require.Len(t, src.menuCalls, 1)
	assert.Nil(t, src.menuCalls[0], "static pages carry every item")

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, `data-mode="static"`)
	assert.Contains(t, page, `href="static/css/menuboard.css"`)
	assert.Contains(t, page, `src="static/js/menuboard.js"`)
	assert.Contains(t, page, `data-fallback="static/img/default-menu.svg"`)
	assert.Contains(t, page, `aria-selected="true" data-category-id="3"`)
	assert.Contains(t, page, "아메리카노")
	assert.Contains(t, page, "치즈케이크")
	assert.Contains(t, page, "품절")

	for _, asset := range []string{"js/menuboard.js", "css/menuboard.css", "img/default-menu.svg"} {
		_, err := os.Stat(filepath.Join(dir, staticDir, filepath.FromSlash(asset)))
		assert.NoError(t, err, asset)
	}
}

func TestRenderStatic_UpstreamFailure(t *testing.T) {
	dir := t.TempDir()
	src := &staticSource{err: errors.New("connection refused")}

	err := renderStatic(context.Background(), config.Default(), src, dir, nil, logger.New("error"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "index.html"))
	assert.True(t, os.IsNotExist(statErr), "no page is written when loading fails")
}
