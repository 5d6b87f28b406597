package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
	"go.uber.org/zap"
)

// InventoryInput is the admin payload for a new product.
type InventoryInput struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Image       string      `json:"image" yaml:"image"`
	Price       float64     `json:"price" yaml:"price"`
	Unit        domain.Unit `json:"unit" yaml:"unit"`
	Stock       int         `json:"stock" yaml:"stock"`
	Category    string      `json:"category" yaml:"category"`
	IsAvailable *bool       `json:"is_available" yaml:"is_available"`
}

type InventoryService struct {
	repo   repository.InventoryRepository
	logger *zap.Logger
}

func NewInventoryService(repo repository.InventoryRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, adminID string, in InventoryInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
		Unit:        in.Unit,
		Stock:       in.Stock,
		Category:    in.Category,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
		CreatedBy:   adminID,
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	s.logger.Info("inventory item created", zap.String("item_id", item.ID), zap.String("admin_id", adminID))
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, patch domain.InventoryPatch) (*domain.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if errors.Is(err, repository.ErrInventoryNotFound) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}

	patch.Apply(item)
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.ReplaceItem(ctx, item)
	if errors.Is(err, repository.ErrInventoryNotFound) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteItem(ctx, id)
	if errors.Is(err, repository.ErrInventoryNotFound) {
		return ErrInventoryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	s.logger.Info("inventory item deleted", zap.String("item_id", id))
	return nil
}
