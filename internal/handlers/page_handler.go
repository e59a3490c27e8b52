package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menuboard/internal/display"
	"github.com/Lixing-Zhang/menuboard/internal/metrics"
	"github.com/Lixing-Zhang/menuboard/internal/render"
)

// PageHandler renders the menu page and the fragments the page script swaps in
// on tab clicks. Every request loads through its own display.Controller.
type PageHandler struct {
	source   display.Source
	renderer *render.Renderer
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(source display.Source, renderer *render.Renderer, rec *metrics.Recorder, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		source:   source,
		renderer: renderer,
		metrics:  rec,
		logger:   logger,
	}
}

// Page handles GET /
// The page is served even when a load fails; the grid shows the error state.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryParam(w, r)
	if !ok {
		return
	}

	ctrl := display.NewController(h.source, h.logger)
	ctrl.Select(categoryID)
	if err := ctrl.Load(r.Context()); err != nil {
		h.logger.Warn("page rendered with load error", "error", err)
	}

	view := ctrl.Snapshot()
	h.metrics.IncRender("page", view.GridState().String())

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, view); err != nil {
		h.renderFailed(w, "page", err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes(), h.logger)
}

// Tabs handles GET /fragments/tabs
func (h *PageHandler) Tabs(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryParam(w, r)
	if !ok {
		return
	}

	ctrl := display.NewController(h.source, h.logger)
	ctrl.Select(categoryID)
	_ = ctrl.LoadCategories(r.Context())

	view := ctrl.Snapshot()
	h.metrics.IncRender("tabs", view.CategoriesState.String())

	var buf bytes.Buffer
	if err := h.renderer.RenderTabs(&buf, view); err != nil {
		h.renderFailed(w, "tabs", err)
		return
	}
	writeHTML(w, fragmentStatus(view.CategoriesState), buf.Bytes(), h.logger)
}

// Menus handles GET /fragments/menus
func (h *PageHandler) Menus(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := h.categoryParam(w, r)
	if !ok {
		return
	}

	ctrl := display.NewController(h.source, h.logger)
	_ = ctrl.Filter(r.Context(), categoryID)

	view := ctrl.Snapshot()
	h.metrics.IncRender("menus", view.GridState().String())

	var buf bytes.Buffer
	if err := h.renderer.RenderGrid(&buf, view); err != nil {
		h.renderFailed(w, "menus", err)
		return
	}
	writeHTML(w, fragmentStatus(view.GridState()), buf.Bytes(), h.logger)
}

// categoryParam parses ?category_id=. It writes a 400 and reports false when
// the value is not a positive integer.
func (h *PageHandler) categoryParam(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	id, err := queryID(r, "category_id")
	if err != nil || (id != nil && *id <= 0) {
		h.logger.Warn("invalid category_id", "value", r.URL.Query().Get("category_id"))
		http.Error(w, "invalid category_id", http.StatusBadRequest)
		return nil, false
	}
	return id, true
}

func (h *PageHandler) renderFailed(w http.ResponseWriter, view string, err error) {
	h.logger.Error("failed to render", "view", view, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func fragmentStatus(state display.LoadState) int {
	if state == display.StateErrored {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
