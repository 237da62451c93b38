// Package dynamo persists carts and serves product snapshots from
// DynamoDB through dynamorm. It is the production implementation of
// the cart.Store and product source collaborators.
package dynamo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pay-theory/dynamorm/pkg/core"
	dynerrors "github.com/pay-theory/dynamorm/pkg/errors"

	"github.com/muheezokunade/storefront/pkg/cart"
	"github.com/muheezokunade/storefront/pkg/catalog"
	"github.com/muheezokunade/storefront/pkg/errors"
)

// DefaultCartTTL is how long an untouched cart survives before the
// table's TTL sweeps it.
const DefaultCartTTL = 7 * 24 * time.Hour

// CartStore reads and writes CartRecord rows keyed by session.
type CartStore struct {
	db  core.DB
	ttl time.Duration
}

// NewCartStore creates a store over the given dynamorm connection. A
// non-positive ttl uses DefaultCartTTL.
func NewCartStore(db core.DB, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &CartStore{db: db, ttl: ttl}
}

var _ cart.Store = (*CartStore)(nil)

// Load implements cart.Store.
func (s *CartStore) Load(ctx context.Context, sessionID string) (cart.Snapshot, error) {
	if sessionID == "" {
		return cart.Snapshot{}, errors.ErrSessionRequired
	}

	var rec CartRecord
	err := s.db.WithContext(ctx).Model(&CartRecord{}).
		Index("gsi-session").
		Where("SessionID", "=", sessionID).
		First(&rec)
	if err != nil {
		if dynerrors.IsNotFound(err) {
			return cart.Snapshot{}, errors.ErrCartNotFound
		}
		return cart.Snapshot{}, errors.NewStoreError("load cart", sessionID, err)
	}

	return rec.Snapshot(), nil
}

// Save implements cart.Store. An existing record for the session is
// replaced in full (last write wins); otherwise a new one is created.
// Every save pushes the TTL out.
func (s *CartStore) Save(ctx context.Context, sessionID string, snap cart.Snapshot) error {
	if sessionID == "" {
		return errors.ErrSessionRequired
	}

	db := s.db.WithContext(ctx)
	now := time.Now()

	var rec CartRecord
	err := db.Model(&CartRecord{}).
		Index("gsi-session").
		Where("SessionID", "=", sessionID).
		First(&rec)

	switch {
	case err == nil:
		rec.Items = snap.Items
		rec.CouponCode = snap.CouponCode
		rec.ExpiresAt = now.Add(s.ttl)
		if err := db.Model(&rec).Update("Items", "CouponCode", "ExpiresAt"); err != nil {
			return errors.NewStoreError("update cart", sessionID, err)
		}
	case dynerrors.IsNotFound(err):
		rec = CartRecord{
			ID:         uuid.New().String(),
			SessionID:  sessionID,
			Items:      snap.Items,
			CouponCode: snap.CouponCode,
			ExpiresAt:  now.Add(s.ttl),
		}
		if err := db.Model(&rec).Create(); err != nil {
			return errors.NewStoreError("create cart", sessionID, err)
		}
	default:
		return errors.NewStoreError("save cart", sessionID, err)
	}

	return nil
}

// Delete removes a session's cart. A missing cart is a no-op.
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.ErrSessionRequired
	}

	db := s.db.WithContext(ctx)

	var rec CartRecord
	err := db.Model(&CartRecord{}).
		Index("gsi-session").
		Where("SessionID", "=", sessionID).
		First(&rec)
	if err != nil {
		if dynerrors.IsNotFound(err) {
			return nil
		}
		return errors.NewStoreError("delete cart", sessionID, err)
	}

	if err := db.Model(&rec).Delete(); err != nil {
		return errors.NewStoreError("delete cart", sessionID, err)
	}
	return nil
}

// ProductSource scans the product table into the catalog read model.
type ProductSource struct {
	db core.DB
}

// NewProductSource creates a source over the given dynamorm connection.
func NewProductSource(db core.DB) *ProductSource {
	return &ProductSource{db: db}
}

// Snapshot returns the full catalog. The shop engine treats the result
// as immutable for the duration of a filter pass.
func (s *ProductSource) Snapshot(ctx context.Context) ([]catalog.Product, error) {
	var recs []ProductRecord
	if err := s.db.WithContext(ctx).Model(&ProductRecord{}).Scan(&recs); err != nil {
		return nil, errors.NewStoreError("scan products", "", err)
	}

	products := make([]catalog.Product, len(recs))
	for i, rec := range recs {
		products[i] = rec.Product()
	}
	return products, nil
}
