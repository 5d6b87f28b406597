package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"github.com/nayanishant/vegetable-wholesaler/internal/cache"
	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/checkout"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const testTimeout = 5 * time.Second

type catalogMock struct {
	m     sync.Mutex
	items []domain.InventoryItem
	err   error
}

func (c *catalogMock) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.items, nil
}

func (c *catalogMock) Products(ctx context.Context) ([]domain.Product, error) {
	items, err := c.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(items))
	for _, it := range items {
		out = append(out, it.Product())
	}
	return out, nil
}

func (c *catalogMock) fail(err error) {
	c.m.Lock()
	defer c.m.Unlock()
	c.err = err
}

func testInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "tomato", Name: "Tomato", Price: 32, Unit: domain.UnitKg, Image: "/tomato.jpg", IsAvailable: true},
		{ID: "onion", Name: "Onion", Price: 25.5, Unit: domain.UnitKg, IsAvailable: true},
	}
}

// newTestRegistry backs carts with a miniredis instance.
func newTestRegistry(t *testing.T) *cart.Registry {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	reg := cart.NewRegistry(cache.NewRedisCache(client, cache.DefaultTTL), zap.NewNop(), time.Hour)
	t.Cleanup(reg.Close)
	return reg
}

func withSession(r *http.Request, subject string, role domain.Role) *http.Request {
	s := &auth.Session{
		Subject:   subject,
		Email:     subject + "@example.com",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return r.WithContext(auth.WithSession(r.Context(), s))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type checkoutMock struct {
	summary *checkout.Summary
	order   *domain.Order
	err     error

	gotAddress string
}

func (c *checkoutMock) Summary(context.Context, *cart.Store, string) (*checkout.Summary, error) {
	return c.summary, c.err
}

func (c *checkoutMock) PlaceOrder(_ context.Context, _ *cart.Store, _ string, addressID string) (*domain.Order, error) {
	c.gotAddress = addressID
	return c.order, c.err
}

type orderServiceMock struct {
	orders []domain.Order
	err    error

	gotUser string
	gotReq  domain.CheckoutRequest
}

func (o *orderServiceMock) CreateOrder(_ context.Context, userID string, req domain.CheckoutRequest) (*domain.Order, error) {
	o.gotUser = userID
	o.gotReq = req
	if o.err != nil {
		return nil, o.err
	}
	return &domain.Order{ID: "ord-1", UserID: userID, TotalPrice: 64, Status: domain.OrderStatusPending}, nil
}

func (o *orderServiceMock) ListOrders(context.Context, string) ([]domain.Order, error) {
	return o.orders, o.err
}

func (o *orderServiceMock) GetOrder(_ context.Context, userID, orderID string) (*domain.Order, error) {
	if o.err != nil {
		return nil, o.err
	}
	for _, ord := range o.orders {
		if ord.ID == orderID && ord.UserID == userID {
			return &ord, nil
		}
	}
	return nil, service.ErrOrderNotFound
}

type profileServiceMock struct {
	user *domain.User
	err  error

	gotUpdate  service.ProfileUpdate
	gotAddress string
}

func (p *profileServiceMock) GetProfile(context.Context, string) (*domain.User, error) {
	return p.user, p.err
}

func (p *profileServiceMock) UpdateProfile(_ context.Context, _ string, upd service.ProfileUpdate) (*domain.User, error) {
	p.gotUpdate = upd
	return p.user, p.err
}

func (p *profileServiceMock) DeleteAddress(_ context.Context, _ string, addressID string) (*domain.User, error) {
	p.gotAddress = addressID
	return p.user, p.err
}

type inventoryAdminMock struct {
	items []domain.InventoryItem
	err   error

	gotAdmin string
	gotID    string
}

func (i *inventoryAdminMock) List(context.Context) ([]domain.InventoryItem, error) {
	return i.items, i.err
}

func (i *inventoryAdminMock) Create(_ context.Context, adminID string, in service.InventoryInput) (*domain.InventoryItem, error) {
	i.gotAdmin = adminID
	if i.err != nil {
		return nil, i.err
	}
	return &domain.InventoryItem{ID: "new", Name: in.Name, Price: in.Price, CreatedBy: adminID}, nil
}

func (i *inventoryAdminMock) Update(_ context.Context, id string, _ domain.InventoryPatch) (*domain.InventoryItem, error) {
	i.gotID = id
	if i.err != nil {
		return nil, i.err
	}
	return &domain.InventoryItem{ID: id}, nil
}

func (i *inventoryAdminMock) Delete(_ context.Context, id string) error {
	i.gotID = id
	return i.err
}

func newRecorderRequest(method, target, body string) (*httptest.ResponseRecorder, *http.Request) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return httptest.NewRecorder(), req
}
