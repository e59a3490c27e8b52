package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Lixing-Zhang/menuboard/internal/models"
)

var (
	ErrMenuNotFound = errors.New("menu not found")
)

// MenuFilter narrows a menu listing. A nil CategoryID lists every category.
type MenuFilter struct {
	CategoryID *int64
	Skip       int
	Limit      int
}

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListMenus(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	GetMenuByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	categories []models.Category
	menus      []models.MenuItem
}

// NewInMemoryMenuRepository creates a repository holding the given catalog
func NewInMemoryMenuRepository(categories []models.Category, menus []models.MenuItem) *InMemoryMenuRepository {
	return &InMemoryMenuRepository{
		categories: categories,
		menus:      menus,
	}
}

// NewSampleMenuRepository creates an in-memory repository with the cafe sample catalog
func NewSampleMenuRepository() *InMemoryMenuRepository {
	return NewInMemoryMenuRepository(SampleCategories(), SampleMenus())
}

// ListCategories returns all categories ordered by display order, then id
func (r *InMemoryMenuRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, len(r.categories))
	copy(categories, r.categories)

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// ListMenus returns menus in id order, filtered and paginated
func (r *InMemoryMenuRepository) ListMenus(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	matched := make([]models.MenuItem, 0, len(r.menus))
	for _, menu := range r.menus {
		if filter.CategoryID != nil && menu.CategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, menu)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if filter.Skip >= len(matched) {
		return []models.MenuItem{}, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetMenuByID returns a menu by its ID
func (r *InMemoryMenuRepository) GetMenuByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	for _, menu := range r.menus {
		if menu.ID == id {
			m := menu
			return &m, nil
		}
	}
	return nil, ErrMenuNotFound
}
