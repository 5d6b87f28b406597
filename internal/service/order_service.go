package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
	"go.uber.org/zap"
)

type OrderService struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	inventory repository.InventoryRepository
	logger    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository,
	inventory repository.InventoryRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		inventory: inventory,
		logger:    logger,
	}
}

// CreateOrder persists a pending order for userID. Prices and the total are
// resolved from the stored inventory, the client's total is only compared.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.Order, error) {
	lines, err := mergeLines(req.Lines)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	address, ok := domain.FindAddress(user.Addresses, req.ShippingAddressID)
	if !ok {
		return nil, ErrAddressNotFound
	}
	if address.Country == "" {
		address.Country = domain.DefaultCountry
	}

	items, total, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	if math.Abs(total-req.ComputedTotal) >= 0.01 {
		s.logger.Warn("client total differs from server total",
			zap.String("user_id", userID),
			zap.Float64("client_total", req.ComputedTotal),
			zap.Float64("server_total", total))
	}

	order := &domain.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		TotalPrice:      total,
		Status:          domain.OrderStatusPending,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(items)),
		zap.Float64("total", total))
	return order, nil
}

// priceLines fetches the current price and name of every line.
func (s *OrderService) priceLines(ctx context.Context, lines []domain.CheckoutLine) ([]domain.OrderItem, float64, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	found, err := s.inventory.GetItems(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load inventory: %w", err)
	}
	byID := make(map[string]domain.InventoryItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		item, ok := byID[l.ProductID]
		if !ok || !item.IsAvailable {
			return nil, 0, fmt.Errorf("%w: %s", ErrProductUnavailable, l.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  l.Quantity,
			Price:     item.Price,
		})
		total += item.Price * float64(l.Quantity)
	}
	return items, domain.RoundMoney(total), nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, userID, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// mergeLines validates lines and folds repeated products together.
func mergeLines(in []domain.CheckoutLine) ([]domain.CheckoutLine, error) {
	if len(in) == 0 {
		return nil, ErrNoItems
	}
	out := make([]domain.CheckoutLine, 0, len(in))
	index := make(map[string]int, len(in))
	for _, l := range in {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, ErrInvalidLine
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
