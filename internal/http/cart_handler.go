package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"go.uber.org/zap"
)

// CartProvider hands out the active cart store of an owner.
type CartProvider interface {
	Get(owner string) *cart.Store
}

type CartHandler struct {
	carts   CartProvider
	catalog cart.Catalog
	timeout time.Duration
}

func NewCartHandler(carts CartProvider, catalog cart.Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

type AdjustQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type CartResponseDTO struct {
	Lines    []domain.ResolvedLine `json:"lines"`
	Total    float64               `json:"total_price"`
	Count    int                   `json:"count"`
	Degraded bool                  `json:"degraded,omitempty"`
}

type CountResponseDTO struct {
	Count int `json:"count"`
}

// readyStore returns the caller's cart once it has been restored.
func (h *CartHandler) readyStore(w http.ResponseWriter, r *http.Request) (context.Context, context.CancelFunc, *cart.Store, bool) {
	session, ok := requireSession(w, r)
	if !ok {
		return nil, nil, nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	store := h.carts.Get(session.Subject)
	if err := store.WaitReady(ctx); err != nil {
		cancel()
		respondError(w, r, http.StatusServiceUnavailable, "cart_not_ready", "cart is still loading")
		return nil, nil, nil, false
	}
	return ctx, cancel, store, true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	h.respondCart(ctx, w, r, store, http.StatusOK)
}

func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, r *http.Request, store *cart.Store, status int) {
	lines := store.Lines()
	resolved, err := cart.Resolve(ctx, h.catalog, lines)
	if err != nil {
		loggerFrom(r.Context()).Warn("cart priced with placeholders", zap.Error(err))
	}

	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	respondJSON(w, r, status, CartResponseDTO{
		Lines:    resolved,
		Total:    cart.Total(resolved),
		Count:    count,
		Degraded: err != nil,
	})
}

// Count serves the cart badge.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	_, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	respondJSON(w, r, http.StatusOK, CountResponseDTO{Count: store.Count()})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > cart.MaxQuantity {
		respondError(w, r, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 999")
		return
	}

	ctx, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	if err := store.AddLine(req.ProductID, req.Quantity, req.Image); err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.respondCart(ctx, w, r, store, http.StatusCreated)
}

// AdjustQuantity applies a signed delta to an existing line.
func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req AdjustQuantityRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta < -cart.MaxQuantity || req.Delta > cart.MaxQuantity {
		respondError(w, r, http.StatusBadRequest, "invalid_quantity", "delta must be between -999 and 999")
		return
	}

	ctx, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	if err := store.AdjustQuantity(productID, req.Delta); err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.respondCart(ctx, w, r, store, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	ctx, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	if err := store.Remove(productID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.respondCart(ctx, w, r, store, http.StatusOK)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	_, cancel, store, ok := h.readyStore(w, r)
	if !ok {
		return
	}
	defer cancel()

	if err := store.Clear(); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
