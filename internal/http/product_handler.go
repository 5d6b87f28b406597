package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

type ProductCatalog interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	Products(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	catalog ProductCatalog
	timeout time.Duration
}

func NewProductHandler(catalog ProductCatalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

// ListProducts returns the public product projection.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, products)
}

// ListInventory returns full inventory entries, the source of cart prices.
func (h *ProductHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.catalog.ListInventory(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}
