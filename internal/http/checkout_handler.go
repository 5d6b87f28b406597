package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/checkout"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

type CheckoutService interface {
	Summary(ctx context.Context, store *cart.Store, userID string) (*checkout.Summary, error)
	PlaceOrder(ctx context.Context, store *cart.Store, userID, addressID string) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	carts    CartProvider
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutService, carts CartProvider, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	AddressID string `json:"address_id"`
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.checkout.Summary(ctx, h.carts.Get(session.Subject), session.Subject)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req PlaceOrderRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.checkout.PlaceOrder(ctx, h.carts.Get(session.Subject), session.Subject, req.AddressID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, order)
}
