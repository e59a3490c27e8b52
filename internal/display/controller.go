// Package display holds the menu display controller: the loaded categories and
// menu items, the selected category, and the load state of each.
package display

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Lixing-Zhang/menuboard/internal/models"
)

// ErrSuperseded is returned by LoadMenus when a newer menu load started before
// this one completed. The newer load owns the grid; nothing was changed.
var ErrSuperseded = errors.New("menu load superseded by a newer request")

// Source supplies categories and menu items. *menuapi.Client implements it.
type Source interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Menus(ctx context.Context, categoryID *int64) ([]models.MenuItem, error)
}

// Controller owns the display state. It is safe for concurrent use.
type Controller struct {
	source Source
	logger *slog.Logger

	mu         sync.Mutex
	categories kindState[models.Category]
	menus      kindState[models.MenuItem]
	current    *int64

	cancelMenus context.CancelFunc
}

type kindState[T any] struct {
	items []T
	state LoadState
	err   error
	gen   uint64
}

// NewController creates a controller with nothing loaded and "All" selected.
func NewController(source Source, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		source: source,
		logger: logger,
	}
}

// Select sets the current category without loading anything. nil selects all.
func (c *Controller) Select(categoryID *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = cloneID(categoryID)
}

// Load fetches categories and menus for the current selection concurrently and
// waits for both. Each kind records its own outcome; the first error is returned.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	selected := cloneID(c.current)
	c.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error { return c.LoadCategories(ctx) })
	g.Go(func() error { return c.LoadMenus(ctx, selected) })
	return g.Wait()
}

// LoadCategories replaces the category collection on success. On failure the
// previous collection is kept and the categories state becomes Errored.
func (c *Controller) LoadCategories(ctx context.Context) error {
	c.mu.Lock()
	c.categories.gen++
	gen := c.categories.gen
	c.categories.state = StateLoading
	c.mu.Unlock()

	categories, err := c.source.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.categories.gen {
		return nil
	}
	if err != nil {
		c.categories.state = StateErrored
		c.categories.err = err
		c.logger.Error("failed to load categories", "error", err)
		return err
	}

	c.categories.items = nonNil(categories)
	c.categories.state = StateLoaded
	c.categories.err = nil
	return nil
}

// LoadMenus replaces the menu collection with items for categoryID (all items
// when nil). A call cancels any menu load still in flight, and a completion
// that has been overtaken by a newer call is discarded with ErrSuperseded.
func (c *Controller) LoadMenus(ctx context.Context, categoryID *int64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancelMenus != nil {
		c.cancelMenus()
	}
	c.cancelMenus = cancel
	c.menus.gen++
	gen := c.menus.gen
	c.menus.state = StateLoading
	c.mu.Unlock()

	menus, err := c.source.Menus(ctx, categoryID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.menus.gen {
		c.logger.Debug("discarding superseded menu load", "category_id", idAttr(categoryID))
		return ErrSuperseded
	}
	c.cancelMenus = nil

	if err != nil {
		c.menus.state = StateErrored
		c.menus.err = err
		c.logger.Error("failed to load menus", "category_id", idAttr(categoryID), "error", err)
		return err
	}

	c.menus.items = nonNil(menus)
	c.menus.state = StateLoaded
	c.menus.err = nil
	return nil
}

// Filter selects categoryID (nil for all) and reloads the menus for it.
func (c *Controller) Filter(ctx context.Context, categoryID *int64) error {
	c.Select(categoryID)
	return c.LoadMenus(ctx, categoryID)
}

// ClearFilter dismisses the active category filter.
func (c *Controller) ClearFilter(ctx context.Context) error {
	return c.Filter(ctx, nil)
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Categories:      slices.Clone(c.categories.items),
		Menus:           slices.Clone(c.menus.items),
		CurrentCategory: cloneID(c.current),
		CategoriesState: c.categories.state,
		MenusState:      c.menus.state,
		CategoriesErr:   c.categories.err,
		MenusErr:        c.menus.err,
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func idAttr(id *int64) any {
	if id == nil {
		return "all"
	}
	return *id
}
