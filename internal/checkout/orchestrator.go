package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrNoAddressSelected  = errors.New("no shipping address selected")
	ErrUnknownAddress     = errors.New("shipping address is not one of the user's addresses")
	ErrSubmissionInFlight = errors.New("checkout already in progress")
	ErrPricing            = errors.New("cannot price cart")
)

const defaultSubmitTimeout = 10 * time.Second

// AddressBook returns a user's saved shipping addresses.
type AddressBook interface {
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
}

// OrderSubmitter creates an order from a checkout request.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.Order, error)
}

// Summary is what the checkout page shows before submission.
type Summary struct {
	Lines             []domain.ResolvedLine `json:"lines"`
	Total             float64               `json:"total_price"`
	Addresses         []domain.Address      `json:"addresses"`
	SelectedAddressID string                `json:"selected_address_id,omitempty"`
	// Degraded is set when prices could not be read and lines show placeholders.
	Degraded bool `json:"degraded,omitempty"`
}

type Orchestrator struct {
	catalog   cart.Catalog
	addresses AddressBook
	orders    OrderSubmitter
	logger    *zap.Logger
	timeout   time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewOrchestrator(catalog cart.Catalog, addresses AddressBook, orders OrderSubmitter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:   catalog,
		addresses: addresses,
		orders:    orders,
		logger:    logger,
		timeout:   defaultSubmitTimeout,
		inFlight:  make(map[string]struct{}),
	}
}

// Summary resolves the cart against live prices and pre-selects the user's
// default address.
func (o *Orchestrator) Summary(ctx context.Context, store *cart.Store, userID string) (*Summary, error) {
	if err := store.WaitReady(ctx); err != nil {
		return nil, err
	}

	resolved, err := cart.Resolve(ctx, o.catalog, store.Lines())
	degraded := err != nil
	if degraded {
		o.logger.Warn("checkout summary priced with placeholders", zap.String("user_id", userID), zap.Error(err))
	}

	addresses, err := o.addresses.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}

	s := &Summary{
		Lines:     resolved,
		Total:     cart.Total(resolved),
		Addresses: addresses,
		Degraded:  degraded,
	}
	if def, ok := domain.DefaultAddress(addresses); ok {
		s.SelectedAddressID = def.ID
	}
	return s, nil
}

// PlaceOrder submits the cart in store as an order shipped to addressID.
// The submitted lines are taken off the cart only when the order was created.
// Local preconditions are checked before any remote call, and only one
// submission per cart owner may be in flight at a time.
func (o *Orchestrator) PlaceOrder(ctx context.Context, store *cart.Store, userID, addressID string) (*domain.Order, error) {
	if err := store.WaitReady(ctx); err != nil {
		return nil, err
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if addressID == "" {
		return nil, ErrNoAddressSelected
	}

	if !o.acquire(store.Owner()) {
		return nil, ErrSubmissionInFlight
	}
	defer o.release(store.Owner())

	addresses, err := o.addresses.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}
	if _, ok := domain.FindAddress(addresses, addressID); !ok {
		return nil, ErrUnknownAddress
	}

	resolved, err := cart.Resolve(ctx, o.catalog, lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricing, err)
	}

	req := domain.CheckoutRequest{
		Lines:             make([]domain.CheckoutLine, 0, len(lines)),
		ShippingAddressID: addressID,
		ComputedTotal:     cart.Total(resolved),
	}
	for _, l := range lines {
		req.Lines = append(req.Lines, domain.CheckoutLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	submitCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	order, err := o.orders.CreateOrder(submitCtx, userID, req)
	if err != nil {
		o.logger.Info("checkout failed, cart kept", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	// only what was ordered leaves the cart, lines added meanwhile stay
	if err := store.Subtract(lines); err != nil {
		o.logger.Warn("order created but cart not cleared",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	return order, nil
}

func (o *Orchestrator) acquire(owner string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[owner]; busy {
		return false
	}
	o.inFlight[owner] = struct{}{}
	return true
}

func (o *Orchestrator) release(owner string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, owner)
}
