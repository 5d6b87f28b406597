package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd service.ProfileUpdate) (*domain.User, error)
	DeleteAddress(ctx context.Context, userID, addressID string) (*domain.User, error)
}

type ProfileHandler struct {
	profiles ProfileService
	timeout  time.Duration
}

func NewProfileHandler(profiles ProfileService, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		timeout:  timeout,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.profiles.GetProfile(ctx, session.Subject)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req service.ProfileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.profiles.UpdateProfile(ctx, session.Subject, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

// DeleteAddress removes the address named by the address_id query parameter.
func (h *ProfileHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	addressID := r.URL.Query().Get("address_id")
	if addressID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "address_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.profiles.DeleteAddress(ctx, session.Subject, addressID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}
