package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/dto"
)

func TestApplySuccess_RemovesOnlySubmittedLines(t *testing.T) {
	store := cart.NewStore([]cart.Line{
		{LineID: "l1", ProductID: 7, Quantity: 2, UnitPrice: 120000, Selected: true},
		{LineID: "l2", ProductID: 10, Quantity: 1, UnitPrice: 149000, Selected: true},
		{LineID: "l3", ProductID: 11, Quantity: 4, UnitPrice: 50000},
	})
	agg := NewAggregator(30000)
	att, err := agg.BuildPaymentRequest(42, store.Selected(), 5)
	require.NoError(t, err)

	writer := &MockOrderWriter{}
	rec := NewReconciler(writer)

	result := &dto.OrderResult{Success: true, OrderID: "ORD123", PaymentStatus: "completed"}
	err = rec.ApplySuccess(context.Background(), store, agg, att, MethodCard, 5, result)
	require.NoError(t, err)

	// only the unselected line survives
	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "l3", lines[0].LineID)

	require.NotNil(t, writer.SavedOrder)
	assert.Equal(t, "ORD123", writer.SavedOrder.OrderID)
	assert.Equal(t, "PENDING", writer.SavedOrder.Status)
	assert.Equal(t, int64(419000), writer.SavedOrder.TotalAmount)
	assert.Equal(t, "CARD", writer.SavedOrder.PurchaseMethod)
	assert.Len(t, writer.SavedItems, 2)
	assert.Equal(t, att.Key, writer.SavedKey)

	// attempt is resolved: the next build mints a fresh key
	assert.Nil(t, agg.Current())
}

func TestApplySuccess_WriterFailureKeepsCart(t *testing.T) {
	store := cart.NewStore([]cart.Line{
		{LineID: "l1", ProductID: 7, Quantity: 2, UnitPrice: 120000, Selected: true},
	})
	agg := NewAggregator(0)
	att, err := agg.BuildPaymentRequest(42, store.Selected(), 5)
	require.NoError(t, err)

	rec := NewReconciler(&MockOrderWriter{SaveErr: errors.New("disk full")})

	err = rec.ApplySuccess(context.Background(), store, agg, att, MethodCOD, 5, &dto.OrderResult{Success: true, OrderID: "ORD9"})
	assert.Error(t, err)
	assert.Equal(t, 1, store.Len(), "cart untouched when the local write fails")
	assert.NotNil(t, agg.Current(), "attempt stays unresolved")
}

func TestRelease_AbandonsAttempt(t *testing.T) {
	agg := NewAggregator(0)
	agg.Restore("stale-key", "fp")

	writer := &MockOrderWriter{}
	rec := NewReconciler(writer)

	require.NoError(t, rec.Release(context.Background(), agg, "stale-key"))
	assert.Equal(t, []string{"stale-key"}, writer.AbandonedKeys)
	assert.Nil(t, agg.Current())
}
