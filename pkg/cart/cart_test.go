package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muheezokunade/storefront/pkg/coupon"
	stferrors "github.com/muheezokunade/storefront/pkg/errors"
)

var testCoupons = coupon.NewStaticRepository(
	coupon.Rule{Code: "WELCOME10", Type: coupon.TypePercentage, Value: 10},
	coupon.Rule{Code: "LUXURY20", Type: coupon.TypePercentage, Value: 20},
	coupon.Rule{Code: "SAVE5000", Type: coupon.TypeFixed, Value: 5000},
)

func newTestEngine() *Engine {
	return New(&Config{Coupons: testCoupons})
}

func agbada(qty int) LineItem {
	return LineItem{
		ProductID: "agbada-001",
		Color:     "navy",
		Size:      "L",
		Name:      "Premium Agbada",
		Price:     45000,
		Quantity:  qty,
	}
}

func TestSubtotalAdditivity(t *testing.T) {
	ctx := context.Background()

	items := []LineItem{
		{ProductID: "a", Price: 1200, Quantity: 1},
		{ProductID: "b", Price: 350, Quantity: 4},
		{ProductID: "c", Color: "red", Price: 9999, Quantity: 2},
	}

	// Insertion order must not matter.
	orders := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}
	for _, order := range orders {
		e := newTestEngine()
		for _, i := range order {
			require.NoError(t, e.AddItem(ctx, items[i], items[i].Quantity))
		}
		assert.Equal(t, int64(1200+4*350+2*9999), e.Totals().Subtotal)
	}
}

func TestAddItemMergesByCompositeKey(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, agbada(1), 2))
	require.NoError(t, e.AddItem(ctx, agbada(1), 3))

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// Same product, different size: a distinct line.
	other := agbada(1)
	other.Size = "XL"
	require.NoError(t, e.AddItem(ctx, other, 1))
	assert.Len(t, e.Items(), 2)
	assert.Equal(t, 6, e.Count())
}

func TestQuantityCap(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, agbada(1), 60))
	require.NoError(t, e.AddItem(ctx, agbada(1), 60))

	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 99, items[0].Quantity)

	require.NoError(t, e.UpdateQuantity(ctx, "agbada-001", 500, "navy", "L"))
	assert.Equal(t, 99, e.Items()[0].Quantity)
}

func TestAddItemNonPositiveQuantityAddsOne(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, agbada(1), 0))
	require.Len(t, e.Items(), 1)
	assert.Equal(t, 1, e.Items()[0].Quantity)

	require.NoError(t, e.AddItem(ctx, agbada(1), -3))
	assert.Equal(t, 2, e.Items()[0].Quantity)
}

func TestIdempotentRemoval(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 2))

	before := e.Snapshot()
	beforeTotals := e.Totals()

	// Wrong id, wrong color, wrong size: none may change anything.
	require.NoError(t, e.RemoveItem(ctx, "no-such-product", "navy", "L"))
	require.NoError(t, e.RemoveItem(ctx, "agbada-001", "black", "L"))
	require.NoError(t, e.RemoveItem(ctx, "agbada-001", "navy", "M"))

	if diff := cmp.Diff(before, e.Snapshot()); diff != "" {
		t.Errorf("cart state changed on no-op removal (-want +got):\n%s", diff)
	}
	assert.Equal(t, beforeTotals, e.Totals())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 2))

	require.NoError(t, e.UpdateQuantity(ctx, "agbada-001", 0, "navy", "L"))
	assert.True(t, e.IsEmpty())
	assert.Equal(t, Totals{}, e.Totals())
}

func TestUpdateQuantityAbsentKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 2))

	require.NoError(t, e.UpdateQuantity(ctx, "ghost", 5, "", ""))
	assert.Len(t, e.Items(), 1)
	assert.Equal(t, 2, e.Items()[0].Quantity)
}

func TestCouponMonotonicity(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 1)) // subtotal 45000

	baseline := e.Totals().Total

	ok, err := e.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.True(t, ok)
	assert.LessOrEqual(t, e.Totals().Total, baseline)
	assert.Equal(t, int64(4500), e.Totals().Discount)

	// A fixed discount larger than the subtotal floors at zero.
	cheap := New(&Config{Coupons: testCoupons})
	require.NoError(t, cheap.AddItem(ctx, LineItem{ProductID: "x", Price: 3000, Quantity: 1}, 1))
	ok, err = cheap.ApplyCoupon(ctx, "SAVE5000")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3000), cheap.Totals().Discount)
	assert.Equal(t, int64(0), cheap.Totals().DiscountedSubtotal)
	assert.Equal(t, int64(0), cheap.Totals().Tax)
}

func TestFreeShippingThreshold(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		price        int64
		wantShipping int64
	}{
		{"below threshold", 49999, 2500},
		{"exactly at threshold", 50000, 0},
		{"above threshold", 50001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			require.NoError(t, e.AddItem(ctx, LineItem{ProductID: "p", Price: tt.price, Quantity: 1}, 1))
			assert.Equal(t, tt.wantShipping, e.Totals().Shipping)
		})
	}
}

func TestFreeShippingUsesDiscountedSubtotal(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	// Subtotal 55000 clears the threshold, but 20% off drops the
	// discounted subtotal to 44000, which does not.
	require.NoError(t, e.AddItem(ctx, LineItem{ProductID: "p", Price: 55000, Quantity: 1}, 1))
	assert.Equal(t, int64(0), e.Totals().Shipping)

	ok, err := e.ApplyCoupon(ctx, "LUXURY20")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(44000), e.Totals().DiscountedSubtotal)
	assert.Equal(t, int64(2500), e.Totals().Shipping)
}

func TestTaxRounding(t *testing.T) {
	ctx := context.Background()

	// 7.5% of 1000 is exactly 75; 7.5% of 990 is 74.25 (down); 7.5%
	// of 20 is 1.5 (half rounds up).
	tests := []struct {
		price   int64
		wantTax int64
	}{
		{1000, 75},
		{990, 74},
		{20, 2},
	}

	for _, tt := range tests {
		e := newTestEngine()
		require.NoError(t, e.AddItem(ctx, LineItem{ProductID: "p", Price: tt.price, Quantity: 1}, 1))
		assert.Equal(t, tt.wantTax, e.Totals().Tax, "price %d", tt.price)
	}
}

func TestTotalsComposition(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, agbada(1), 2)) // subtotal 90000
	ok, err := e.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.True(t, ok)

	got := e.Totals()
	assert.Equal(t, int64(90000), got.Subtotal)
	assert.Equal(t, int64(9000), got.Discount)
	assert.Equal(t, int64(81000), got.DiscountedSubtotal)
	assert.Equal(t, int64(6075), got.Tax) // 7.5% of 81000
	assert.Equal(t, int64(0), got.Shipping)
	assert.Equal(t, int64(87075), got.Total)

	f := got.Formatted()
	assert.Equal(t, "₦90,000", f.Subtotal)
	assert.Equal(t, "₦87,075", f.Total)
}

func TestScenarioAddUpdateRemove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, agbada(1), 2))
	assert.Equal(t, int64(90000), e.Totals().Subtotal)

	require.NoError(t, e.UpdateQuantity(ctx, "agbada-001", 5, "navy", "L"))
	assert.Equal(t, int64(225000), e.Totals().Subtotal)

	require.NoError(t, e.RemoveItem(ctx, "agbada-001", "navy", "L"))
	assert.Equal(t, int64(0), e.Totals().Subtotal)
	assert.Empty(t, e.Items())
	assert.True(t, e.IsEmpty())
}

func TestScenarioCouponReplace(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, LineItem{ProductID: "p", Price: 10000, Quantity: 1}, 1))

	ok, err := e.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1000), e.Totals().Discount)

	// The second coupon replaces the first; discounts never stack.
	ok, err = e.ApplyCoupon(ctx, "LUXURY20")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2000), e.Totals().Discount)

	applied, has := e.AppliedCoupon()
	require.True(t, has)
	assert.Equal(t, "LUXURY20", applied.Code)
}

func TestScenarioInvalidCoupon(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 1))

	before := e.Totals()

	ok, err := e.ApplyCoupon(ctx, "NOTREAL")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, e.Totals())

	_, has := e.AppliedCoupon()
	assert.False(t, has)
}

func TestRemoveCoupon(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 1))

	ok, err := e.ApplyCoupon(ctx, "welcome10") // case-insensitive
	require.NoError(t, err)
	require.True(t, ok)
	require.NotZero(t, e.Totals().Discount)

	require.NoError(t, e.RemoveCoupon(ctx))
	assert.Zero(t, e.Totals().Discount)
	assert.Equal(t, e.Totals().Subtotal, e.Totals().DiscountedSubtotal)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	require.NoError(t, e.AddItem(ctx, agbada(1), 3))
	ok, err := e.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, e.Clear(ctx))
	assert.True(t, e.IsEmpty())
	assert.Equal(t, Totals{}, e.Totals())
	_, has := e.AppliedCoupon()
	assert.False(t, has)
}

func TestEmptyImageDefaultsToPlaceholder(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	require.NoError(t, e.AddItem(ctx, LineItem{ProductID: "p", Price: 100, Quantity: 1}, 1))
	assert.Equal(t, PlaceholderImage, e.Items()[0].Image)
}

// fakeStore records saves and serves a canned snapshot.
type fakeStore struct {
	snap    Snapshot
	loadErr error
	saveErr error
	saves   []Snapshot
}

func (f *fakeStore) Load(_ context.Context, _ string) (Snapshot, error) {
	if f.loadErr != nil {
		return Snapshot{}, f.loadErr
	}
	return f.snap, nil
}

func (f *fakeStore) Save(_ context.Context, _ string, snap Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, snap)
	return nil
}

func TestPersistAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	e := New(&Config{Coupons: testCoupons, Store: store, SessionID: "sess-1"})

	require.NoError(t, e.AddItem(ctx, agbada(1), 1))
	_, err := e.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.NoError(t, e.RemoveCoupon(ctx))
	require.NoError(t, e.Clear(ctx))

	require.Len(t, store.saves, 4)
	assert.Equal(t, "WELCOME10", store.saves[1].CouponCode)
	assert.Empty(t, store.saves[3].Items)
}

func TestLoadHydratesAndRevalidates(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	store.snap = Snapshot{
		Items: []LineItem{
			{ProductID: "a", Price: 500, Quantity: 120}, // over the cap
			{ProductID: "b", Price: 800, Quantity: 0},   // dead line, dropped
			{ProductID: "c", Price: 300, Quantity: 2},
		},
		CouponCode: "WELCOME10",
	}

	e := New(&Config{Coupons: testCoupons, Store: store, SessionID: "sess-1"})
	require.NoError(t, e.Load(ctx))

	items := e.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 99, items[0].Quantity)
	assert.Equal(t, PlaceholderImage, items[0].Image)

	applied, has := e.AppliedCoupon()
	require.True(t, has)
	assert.Equal(t, "WELCOME10", applied.Code)
	assert.Equal(t, int64(99*500+2*300), e.Totals().Subtotal)
}

func TestLoadMissingCartStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{loadErr: stferrors.ErrCartNotFound}

	e := New(&Config{Store: store, SessionID: "sess-1"})
	require.NoError(t, e.Load(ctx))
	assert.True(t, e.IsEmpty())
}

func TestSaveFailureSurfacesButMutationSticks(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{saveErr: errors.New("dynamodb unavailable")}

	e := New(&Config{Store: store, SessionID: "sess-1"})
	err := e.AddItem(ctx, agbada(1), 1)

	require.Error(t, err)
	var storeErr *stferrors.StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Len(t, e.Items(), 1) // the in-memory mutation still applied
}
