package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/catalog"
	"github.com/nayanishant/vegetable-wholesaler/internal/checkout"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		loggerFrom(r.Context()).Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings translates domain errors into HTTP responses, first match wins.
var errorMappings = []errorMapping{
	{cart.ErrInvalidDelta, http.StatusBadRequest, "invalid_quantity"},
	{cart.ErrEmptyProduct, http.StatusBadRequest, "invalid_product_id"},
	{cart.ErrNotReady, http.StatusServiceUnavailable, "cart_not_ready"},
	{cart.ErrStoreClosed, http.StatusServiceUnavailable, "cart_not_ready"},
	{checkout.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{checkout.ErrNoAddressSelected, http.StatusBadRequest, "no_address_selected"},
	{checkout.ErrUnknownAddress, http.StatusBadRequest, "unknown_address"},
	{checkout.ErrSubmissionInFlight, http.StatusConflict, "checkout_in_progress"},
	{checkout.ErrPricing, http.StatusServiceUnavailable, "catalog_unavailable"},
	{catalog.ErrUnavailable, http.StatusServiceUnavailable, "catalog_unavailable"},
	{service.ErrNoItems, http.StatusBadRequest, "no_items"},
	{service.ErrInvalidLine, http.StatusBadRequest, "invalid_item"},
	{service.ErrInvalidAddress, http.StatusBadRequest, "invalid_address"},
	{service.ErrAddressNotFound, http.StatusBadRequest, "address_not_found"},
	{service.ErrProductUnavailable, http.StatusConflict, "product_unavailable"},
	{service.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{service.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{service.ErrInventoryNotFound, http.StatusNotFound, "inventory_not_found"},
	{domain.ErrInvalidName, http.StatusBadRequest, "invalid_name"},
	{domain.ErrInvalidPrice, http.StatusBadRequest, "invalid_price"},
	{domain.ErrInvalidStock, http.StatusBadRequest, "invalid_stock"},
	{domain.ErrInvalidUnit, http.StatusBadRequest, "invalid_unit"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			respondError(w, r, m.status, m.code, m.err.Error())
			return
		}
	}
	loggerFrom(r.Context()).Error("request failed", zap.Error(err))
	respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
