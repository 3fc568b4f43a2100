// Package cart maintains the single authoritative in-memory view of the
// current user's cart. Every mutation is a round-trip through the API client
// followed by a full refresh; the client never locally predicts the server's
// post-mutation state.
package cart

import (
	"context"
	"sync"

	"github.com/mnorrell/shopfront/api"
	"github.com/mnorrell/shopfront/core"
)

// Backend is the narrow slice of the API client the container depends on.
// *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	GetCart(ctx context.Context) (*api.Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, productID int64, quantity int) error
	RemoveFromCart(ctx context.Context, productID int64) error
}

// Notifier delivers authentication state transitions; session.Manager
// implements it.
type Notifier interface {
	Subscribe(listener core.AuthListener)
}

// Container holds the server-synchronized cart snapshot. The snapshot is nil
// until the first successful fetch after authentication and becomes nil again
// immediately on logout, so no cart data leaks across identities.
type Container struct {
	backend Backend
	logger  core.Logger

	mu   sync.RWMutex
	cart *api.Cart

	// epoch invalidates refreshes issued before a Clear: a slow fetch started
	// under a previous identity must never repopulate the snapshot.
	epoch uint64
}

// NewContainer creates an empty cart container bound to the given backend
func NewContainer(backend Backend, logger core.Logger) *Container {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Container{
		backend: backend,
		logger:  logger,
	}
}

// BindSession subscribes the container to authentication transitions. On
// login the cart is refreshed in the background; on logout it is cleared
// synchronously before the notification returns.
func (c *Container) BindSession(n Notifier) {
	n.Subscribe(func(authenticated bool) {
		if !authenticated {
			c.Clear()
			return
		}
		go func() {
			if err := c.Refresh(context.Background()); err != nil {
				c.logger.Error("Failed to fetch cart", map[string]interface{}{
					"operation": "cart_refresh",
					"error":     err.Error(),
				})
			}
		}()
	})
}

// Refresh fetches the current cart and replaces the held snapshot wholesale.
// On failure the previous snapshot is left untouched and the error is
// returned. Concurrent refreshes are last-write-wins.
func (c *Container) Refresh(ctx context.Context) error {
	c.mu.RLock()
	epoch := c.epoch
	c.mu.RUnlock()

	snapshot, err := c.backend.GetCart(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch cart", map[string]interface{}{
			"operation": "cart_refresh",
			"error":     err.Error(),
		})
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		// The identity changed while this fetch was in flight; its result
		// belongs to a previous session and must not become visible.
		return nil
	}
	c.cart = snapshot
	return nil
}

// AddItem adds quantity units of a product, then refreshes. Quantity must be
// at least 1; callers validate, the container does not clamp.
func (c *Container) AddItem(ctx context.Context, productID int64, quantity int) error {
	if err := c.backend.AddToCart(ctx, productID, quantity); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// UpdateItem replaces the quantity of an existing line, then refreshes
func (c *Container) UpdateItem(ctx context.Context, productID int64, quantity int) error {
	if err := c.backend.UpdateCartItem(ctx, productID, quantity); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// RemoveItem removes a line entirely, then refreshes. Removal of a
// non-existent line is delegated to the backend's own error semantics.
func (c *Container) RemoveItem(ctx context.Context, productID int64) error {
	if err := c.backend.RemoveFromCart(ctx, productID); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Clear drops the held snapshot without any network call. Nothing is deleted
// server-side; this is the "forget everything" transition used on logout.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = nil
	c.epoch++
}

// Snapshot returns a copy of the current cart, or nil when no cart is loaded.
// The copy keeps the container's snapshot immutable from the outside.
func (c *Container) Snapshot() *api.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cart == nil {
		return nil
	}
	snapshot := *c.cart
	snapshot.Items = append([]api.CartItem(nil), c.cart.Items...)
	return &snapshot
}

// Count returns the total number of units in the cart, recomputed from the
// current snapshot on every call.
func (c *Container) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cart == nil {
		return 0
	}
	total := 0
	for _, item := range c.cart.Items {
		total += item.Quantity
	}
	return total
}

// Total returns the cart value, recomputed from the current snapshot on
// every call; it can never diverge from the item list.
func (c *Container) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cart == nil {
		return 0
	}
	total := 0.0
	for _, item := range c.cart.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
