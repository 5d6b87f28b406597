package cart

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/cache"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
	"go.uber.org/zap"
)

const storageTimeout = 3 * time.Second

// MaxQuantity caps a single line. Increments beyond it saturate.
const MaxQuantity = 999

var (
	ErrNotReady     = errors.New("cart is still being restored")
	ErrInvalidDelta = errors.New("quantity delta must be at least 1")
	ErrEmptyProduct = errors.New("product id is required")
	ErrStoreClosed  = errors.New("cart store is closed")
)

// Store holds one owner's cart in memory. The in-memory lines are authoritative;
// persistence is a best-effort write-back performed by a background loop.
//
// Mutations are rejected with ErrNotReady until the persisted cart has been
// restored, so a restore can never overwrite lines added in the meantime.
type Store struct {
	owner  string
	cache  cache.CartCache
	logger *zap.Logger

	mu     sync.Mutex
	lines  []domain.CartLine
	loaded bool
	closed bool

	ready     chan struct{}
	dirty     chan struct{}
	done      chan struct{}
	activate  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewStore(owner string, c cache.CartCache, logger *zap.Logger) *Store {
	return &Store{
		owner:  owner,
		cache:  c,
		logger: logger.With(zap.String("cart_owner", owner)),
		ready:  make(chan struct{}),
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Activate starts the asynchronous restore and the write-back loop.
// Calling it more than once has no effect.
func (s *Store) Activate() {
	s.activate.Do(func() {
		s.wg.Add(2)
		go s.restore()
		go s.persistLoop()
	})
}

func (s *Store) restore() {
	defer s.wg.Done()
	defer close(s.ready)

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	var lines []domain.CartLine
	data, err := s.cache.Get(ctx, s.owner)
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
	case err != nil:
		s.logger.Warn("cart restore failed, starting empty", zap.Error(err))
	default:
		decoded, decodeErr := Decode(data)
		if decodeErr != nil {
			s.logger.Warn("persisted cart unreadable, starting empty", zap.Error(decodeErr))
		} else {
			lines = decoded
		}
	}

	s.mu.Lock()
	s.lines = lines
	s.loaded = true
	s.mu.Unlock()
}

func (s *Store) persistLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.dirty:
			s.flush()
		case <-s.done:
			select {
			case <-s.dirty:
				s.flush()
			default:
			}
			return
		}
	}
}

func (s *Store) flush() {
	s.mu.Lock()
	snapshot := slices.Clone(s.lines)
	s.mu.Unlock()

	payload, err := Encode(snapshot)
	if err != nil {
		s.logger.Error("encode cart failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.cache.Set(ctx, s.owner, payload); err != nil {
		s.logger.Warn("cart write-back failed", zap.Error(err))
	}
}

// markDirtyLocked schedules a write-back. Pending requests coalesce into one.
func (s *Store) markDirtyLocked() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Store) checkLocked() error {
	if s.closed {
		return ErrStoreClosed
	}
	if !s.loaded {
		return ErrNotReady
	}
	return nil
}

func (s *Store) Owner() string {
	return s.owner
}

// Ready reports whether restoration has completed.
func (s *Store) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// WaitReady blocks until restoration completes or ctx is done.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddLine merges delta into the line for productID, appending a new line when
// none exists. The image of an existing line is kept.
func (s *Store) AddLine(productID string, delta int, image string) error {
	if productID == "" {
		return ErrEmptyProduct
	}
	if delta < 1 {
		return ErrInvalidDelta
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}

	if i := s.indexLocked(productID); i >= 0 {
		s.lines[i].Quantity = addQuantity(s.lines[i].Quantity, delta)
	} else {
		s.lines = append(s.lines, domain.CartLine{ProductID: productID, Quantity: min(delta, MaxQuantity), Image: image})
	}
	s.markDirtyLocked()
	return nil
}

// AdjustQuantity adds delta (which may be negative) to an existing line,
// clamping to [0, MaxQuantity] and removing the line when it reaches zero.
// Unknown product ids are ignored.
func (s *Store) AdjustQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}

	i := s.indexLocked(productID)
	if i < 0 {
		return nil
	}
	if q := addQuantity(s.lines[i].Quantity, delta); q == 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	} else {
		s.lines[i].Quantity = q
	}
	s.markDirtyLocked()
	return nil
}

// Subtract takes the quantities of submitted off the cart, removing lines that
// reach zero. Lines added or increased since submitted was taken are kept.
func (s *Store) Subtract(submitted []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}

	for _, sub := range submitted {
		if sub.Quantity <= 0 {
			continue
		}
		i := s.indexLocked(sub.ProductID)
		if i < 0 {
			continue
		}
		if q := addQuantity(s.lines[i].Quantity, -sub.Quantity); q == 0 {
			s.lines = slices.Delete(s.lines, i, i+1)
		} else {
			s.lines[i].Quantity = q
		}
	}
	s.markDirtyLocked()
	return nil
}

// Remove drops the line for productID, the same as adjusting by its negated quantity.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}

	if i := s.indexLocked(productID); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
		s.markDirtyLocked()
	}
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLocked(); err != nil {
		return err
	}
	s.lines = nil
	s.markDirtyLocked()
	return nil
}

// Count is the sum of quantities across lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// addQuantity returns q+delta clamped to [0, MaxQuantity] without overflowing.
// q is always within that range.
func addQuantity(q, delta int) int {
	switch {
	case delta > MaxQuantity-q:
		return MaxQuantity
	case delta < -q:
		return 0
	}
	return q + delta
}

func (s *Store) indexLocked(productID string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.ProductID == productID
	})
}

// Close stops the write-back loop after flushing any pending write.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.done)
		s.wg.Wait()
	})
}
