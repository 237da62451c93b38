// Package memory provides in-memory implementations of the cart store
// and product source, used in tests and for local development without
// a DynamoDB endpoint.
package memory

import (
	"context"
	"sync"

	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/catalog"
	"github.com/muheezokunade/storefront/pkg/errors"
)

// CartStore keeps cart snapshots per session in a map. Unlike the
// engines it is safe for concurrent use, since one store backs many
// sessions.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]cart.Snapshot
}

// NewCartStore creates an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]cart.Snapshot)}
}

// Load implements cart.Store.
func (s *CartStore) Load(_ context.Context, sessionID string) (cart.Snapshot, error) {
	if sessionID == "" {
		return cart.Snapshot{}, errors.ErrSessionRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.carts[sessionID]
	if !ok {
		return cart.Snapshot{}, errors.ErrCartNotFound
	}
	return snap, nil
}

// Save implements cart.Store. The stored snapshot replaces any
// previous one for the session: last write wins, no merging.
func (s *CartStore) Save(_ context.Context, sessionID string, snap cart.Snapshot) error {
	if sessionID == "" {
		return errors.ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = snap
	return nil
}

// Delete drops a session's cart. Deleting an absent session is a no-op.
func (s *CartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// ProductSource serves a fixed product snapshot.
type ProductSource struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewProductSource creates a source over the given products.
func NewProductSource(products []catalog.Product) *ProductSource {
	return &ProductSource{products: products}
}

// Snapshot returns a copy of the full product list.
func (s *ProductSource) Snapshot(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Replace swaps the snapshot the source serves.
func (s *ProductSource) Replace(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}
