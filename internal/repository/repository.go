package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

var (
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
)

// InventoryRepository stores the product catalog.
// Consumers define this interface, not the MongoDB implementation
type InventoryRepository interface {
	// ListInventory returns every item, newest first.
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	// GetItems returns the items with the given ids. Unknown ids are skipped.
	GetItems(ctx context.Context, ids []string) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	CreateItem(ctx context.Context, item *domain.InventoryItem) error
	ReplaceItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error)
	// ListOrdersByUser returns the user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// ListUnpublished returns up to limit orders whose created event has not been sent.
	ListUnpublished(ctx context.Context, limit int) ([]domain.Order, error)
	MarkPublished(ctx context.Context, orderID string, at time.Time) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	// UpdateProfile overwrites phone and addresses and returns the stored user.
	UpdateProfile(ctx context.Context, id, phone string, addresses []domain.Address) (*domain.User, error)
}
