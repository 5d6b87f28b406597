package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"github.com/nayanishant/vegetable-wholesaler/pkg/circuitbreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrUnavailable = errors.New("catalog unavailable")

const defaultReadTimeout = 3 * time.Second

// Source lists the persisted inventory.
type Source interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// Reader serves live inventory reads. Concurrent reads share one query and a
// circuit breaker fails fast while the store is down. Nothing is cached, every
// call that does not overlap another one sees the current prices.
type Reader struct {
	source  Source
	breaker *circuitbreaker.Breaker[[]domain.InventoryItem]
	sfg     singleflight.Group // coalesces concurrent reads
	timeout time.Duration
}

func NewReader(source Source, logger *zap.Logger) *Reader {
	return &Reader{
		source: source,
		breaker: circuitbreaker.New[[]domain.InventoryItem](circuitbreaker.Settings{
			Name:        "inventory",
			MaxFailures: 5,
			OpenTimeout: 15 * time.Second,
		}, logger),
		timeout: defaultReadTimeout,
	}
}

func (r *Reader) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	v, err, _ := r.sfg.Do("inventory", func() (interface{}, error) {
		return r.breaker.Execute(func() ([]domain.InventoryItem, error) {
			// shared by every caller in flight, so not bound to the first caller's cancellation
			readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
			defer cancel()
			return r.source.ListInventory(readCtx)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return slices.Clone(v.([]domain.InventoryItem)), nil
}

// Products returns the public projection of the inventory.
func (r *Reader) Products(ctx context.Context) ([]domain.Product, error) {
	items, err := r.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.Product())
	}
	return products, nil
}
