package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/menuboard/internal/models"
	"github.com/Lixing-Zhang/menuboard/internal/repository"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

var (
	ErrInvalidPagination = errors.New("skip must be >= 0 and limit between 1 and 100")
)

// ListMenusParams are the query parameters of a menu listing
type ListMenusParams struct {
	CategoryID *int64
	Skip       int
	Limit      int // 0 means DefaultLimit
}

// MenuService handles business logic for the menu catalog
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListCategories returns all categories in display order
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListMenus returns menus, optionally constrained to one category
func (s *MenuService) ListMenus(ctx context.Context, params ListMenusParams) ([]models.MenuItem, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if params.Skip < 0 || limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidPagination
	}

	return s.repo.ListMenus(ctx, repository.MenuFilter{
		CategoryID: params.CategoryID,
		Skip:       params.Skip,
		Limit:      limit,
	})
}

// GetMenu returns a menu by ID
func (s *MenuService) GetMenu(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.repo.GetMenuByID(ctx, id)
}
