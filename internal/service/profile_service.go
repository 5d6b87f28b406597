package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
)

type ProfileUpdate struct {
	Phone     string           `json:"phone"`
	Addresses []domain.Address `json:"addresses"`
}

type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// ListAddresses returns the user's saved shipping addresses.
func (s *ProfileService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

// UpdateProfile replaces the phone number and address list. The stored list
// always has exactly one default address when it is not empty.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error) {
	addresses := make([]domain.Address, 0, len(upd.Addresses))
	for _, a := range upd.Addresses {
		a = cleanAddress(a)
		if a.Street == "" || a.City == "" || a.PostalCode == "" {
			return nil, ErrInvalidAddress
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		addresses = append(addresses, a)
	}
	normalizeDefault(addresses)

	return s.save(ctx, userID, strings.TrimSpace(upd.Phone), addresses)
}

// DeleteAddress removes an address, promoting the first remaining one when the
// default was removed.
func (s *ProfileService) DeleteAddress(ctx context.Context, userID, addressID string) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(user.Addresses, func(a domain.Address) bool { return a.ID == addressID })
	if i < 0 {
		return nil, ErrAddressNotFound
	}
	addresses := slices.Delete(slices.Clone(user.Addresses), i, i+1)
	normalizeDefault(addresses)

	return s.save(ctx, userID, user.Phone, addresses)
}

func (s *ProfileService) save(ctx context.Context, userID, phone string, addresses []domain.Address) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, phone, addresses)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

func cleanAddress(a domain.Address) domain.Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = domain.DefaultCountry
	}
	return a
}

// normalizeDefault keeps the first flagged address as the only default, or
// flags the first address when none is.
func normalizeDefault(addresses []domain.Address) {
	if len(addresses) == 0 {
		return
	}
	found := false
	for i := range addresses {
		if addresses[i].IsDefault && !found {
			found = true
			continue
		}
		addresses[i].IsDefault = false
	}
	if !found {
		addresses[0].IsDefault = true
	}
}
