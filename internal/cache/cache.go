package cache

import (
	"context"
	"errors"
)

// CartCache persists the encoded cart of one owner under a single named key.
// The payload is opaque here, the cart package owns its layout.
type CartCache interface {
	Get(ctx context.Context, owner string) ([]byte, error)
	Set(ctx context.Context, owner string, payload []byte) error
	Delete(ctx context.Context, owner string) error
}

var ErrCacheMiss = errors.New("cache miss")
