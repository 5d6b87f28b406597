package http

import (
	"net/http"
	"testing"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	mock := &profileServiceMock{user: &domain.User{ID: "u1"}}
	handler := NewProfileHandler(mock, testTimeout)

	body := `{"phone":"123","addresses":[{"street":"1 Main","city":"Pune","postal_code":"411001"}]}`
	rec, req := newRecorderRequest(http.MethodPatch, "/api/profile", body)
	handler.UpdateProfile(rec, withSession(req, "u1", domain.RoleUser))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123", mock.gotUpdate.Phone)
	require.Len(t, mock.gotUpdate.Addresses, 1)
	assert.Equal(t, "411001", mock.gotUpdate.Addresses[0].PostalCode)
}

func TestUpdateProfile_InvalidAddress(t *testing.T) {
	handler := NewProfileHandler(&profileServiceMock{err: service.ErrInvalidAddress}, testTimeout)

	rec, req := newRecorderRequest(http.MethodPatch, "/api/profile", `{"addresses":[{}]}`)
	handler.UpdateProfile(rec, withSession(req, "u1", domain.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAddress(t *testing.T) {
	mock := &profileServiceMock{user: &domain.User{ID: "u1"}}
	handler := NewProfileHandler(mock, testTimeout)

	rec, req := newRecorderRequest(http.MethodDelete, "/api/profile?address_id=a2", "")
	handler.DeleteAddress(rec, withSession(req, "u1", domain.RoleUser))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a2", mock.gotAddress)
}

func TestDeleteAddress_RequiresID(t *testing.T) {
	mock := &profileServiceMock{}
	handler := NewProfileHandler(mock, testTimeout)

	rec, req := newRecorderRequest(http.MethodDelete, "/api/profile", "")
	handler.DeleteAddress(rec, withSession(req, "u1", domain.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, mock.gotAddress)
}

func TestGetProfile_NotFound(t *testing.T) {
	handler := NewProfileHandler(&profileServiceMock{err: service.ErrUserNotFound}, testTimeout)

	rec, req := newRecorderRequest(http.MethodGet, "/api/profile", "")
	handler.GetProfile(rec, withSession(req, "u1", domain.RoleUser))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
