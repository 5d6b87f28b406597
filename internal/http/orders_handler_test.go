package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_PassesRequestThrough(t *testing.T) {
	mock := &orderServiceMock{}
	handler := NewOrdersHandler(mock, testTimeout)

	body := `{"items":[{"product_id":"tomato","quantity":2}],"shipping_address_id":"a1","total_price":64}`
	rec, req := newRecorderRequest(http.MethodPost, "/api/orders", body)
	handler.CreateOrder(rec, withSession(req, "u1", domain.RoleUser))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", mock.gotUser)
	assert.Equal(t, "a1", mock.gotReq.ShippingAddressID)
	require.Len(t, mock.gotReq.Lines, 1)
	assert.Equal(t, 2, mock.gotReq.Lines[0].Quantity)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrNoItems, http.StatusBadRequest},
		{service.ErrAddressNotFound, http.StatusBadRequest},
		{service.ErrProductUnavailable, http.StatusConflict},
		{service.ErrUserNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			handler := NewOrdersHandler(&orderServiceMock{err: tt.err}, testTimeout)

			rec, req := newRecorderRequest(http.MethodPost, "/api/orders", `{"items":[]}`)
			handler.CreateOrder(rec, withSession(req, "u1", domain.RoleUser))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestListOrders_EmptyIsArray(t *testing.T) {
	handler := NewOrdersHandler(&orderServiceMock{}, testTimeout)

	rec, req := newRecorderRequest(http.MethodGet, "/api/orders", "")
	handler.ListOrders(rec, withSession(req, "u1", domain.RoleUser))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetOrder(t *testing.T) {
	mock := &orderServiceMock{orders: []domain.Order{{ID: "ord-1", UserID: "u1"}}}
	handler := NewOrdersHandler(mock, testTimeout)

	rec, req := newRecorderRequest(http.MethodGet, "/api/orders/ord-1", "")
	handler.GetOrder(rec, withURLParam(withSession(req, "u1", domain.RoleUser), "order_id", "ord-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var order domain.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, "ord-1", order.ID)

	rec, req = newRecorderRequest(http.MethodGet, "/api/orders/ord-1", "")
	handler.GetOrder(rec, withURLParam(withSession(req, "u2", domain.RoleUser), "order_id", "ord-1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
