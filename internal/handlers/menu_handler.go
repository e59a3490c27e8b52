package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/menuboard/internal/repository"
	"github.com/Lixing-Zhang/menuboard/internal/service"
)

// MenuHandler serves the sample menu REST API
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// ListMenus handles GET /api/v1/menus
// Query: category_id (0 or absent lists all), skip (default 0), limit (default 100)
func (h *MenuHandler) ListMenus(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		h.logger.Warn("invalid category_id", "value", r.URL.Query().Get("category_id"))
		WriteError(w, http.StatusBadRequest, "Invalid category_id", h.logger)
		return
	}
	if categoryID != nil && *categoryID == 0 {
		categoryID = nil
	}

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid skip", h.logger)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultLimit)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid limit", h.logger)
		return
	}

	menus, err := h.service.ListMenus(r.Context(), service.ListMenusParams{
		CategoryID: categoryID,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to list menus", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, menus, h.logger)
}

// GetMenu handles GET /api/v1/menus/{menuId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Menu not found
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menuID := chi.URLParam(r, "menuId")

	id, err := strconv.ParseInt(menuID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid menu ID format", "menuId", menuID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	menu, err := h.service.GetMenu(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			h.logger.Info("menu not found", "menuId", id)
			WriteError(w, http.StatusNotFound, "Menu not found", h.logger)
			return
		}

		h.logger.Error("failed to get menu", "menuId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, menu, h.logger)
}
