package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
)

type InventoryAdmin interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Create(ctx context.Context, adminID string, in service.InventoryInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, patch domain.InventoryPatch) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// AdminInventoryHandler serves inventory management. The route guard only lets
// admin sessions through.
type AdminInventoryHandler struct {
	inventory InventoryAdmin
	timeout   time.Duration
}

func NewAdminInventoryHandler(inventory InventoryAdmin, timeout time.Duration) *AdminInventoryHandler {
	return &AdminInventoryHandler{
		inventory: inventory,
		timeout:   timeout,
	}
}

func (h *AdminInventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.inventory.List(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}

func (h *AdminInventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req service.InventoryInput
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	item, err := h.inventory.Create(ctx, session.Subject, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, item)
}

func (h *AdminInventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.InventoryPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	item, err := h.inventory.Update(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, item)
}

func (h *AdminInventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.inventory.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
