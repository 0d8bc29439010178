package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppingcart-backend/internal/dto"
)

func TestAddToCart_MirrorsToRepository(t *testing.T) {
	repo := &MockCartRepository{}
	svc := NewCartService(repo)
	sess := newTestSession(&MockPaymentClient{}, nil)

	resp, err := svc.AddToCart(context.Background(), sess, &dto.AddToCartRequest{
		ProductID: 7, UnitPrice: 120000, VariantSize: "42",
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(120000), resp.Subtotal)

	require.Len(t, repo.Upserts, 1)
	assert.Equal(t, int64(42), repo.Upserts[0].UserID)
	assert.Equal(t, int64(7), repo.Upserts[0].ProductID)

	// same product+variant again: quantity 2, subtotal doubles
	resp, err = svc.AddToCart(context.Background(), sess, &dto.AddToCartRequest{
		ProductID: 7, UnitPrice: 120000, VariantSize: "42",
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2), resp.Items[0].Quantity)
	assert.Equal(t, int64(240000), resp.Subtotal)
}

func TestUpdateQuantity_ZeroDeletes(t *testing.T) {
	repo := &MockCartRepository{}
	svc := NewCartService(repo)
	sess := newTestSession(&MockPaymentClient{}, exampleCartLines())

	resp, err := svc.UpdateQuantity(context.Background(), sess, "l1", 0)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, []string{"l1"}, repo.Deleted)
}

func TestUpdateQuantity_RecomputesSubtotal(t *testing.T) {
	svc := NewCartService(&MockCartRepository{})
	sess := newTestSession(&MockPaymentClient{}, exampleCartLines())

	resp, err := svc.UpdateQuantity(context.Background(), sess, "l1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3*120000+149000), resp.Subtotal)
}

func TestClearCart(t *testing.T) {
	repo := &MockCartRepository{}
	svc := NewCartService(repo)
	sess := newTestSession(&MockPaymentClient{}, exampleCartLines())

	require.NoError(t, svc.ClearCart(context.Background(), sess))
	assert.Equal(t, 0, sess.Cart.Len())
	assert.True(t, repo.Cleared)
}

func TestSetSelection_Mirrors(t *testing.T) {
	repo := &MockCartRepository{}
	svc := NewCartService(repo)
	sess := newTestSession(&MockPaymentClient{}, exampleCartLines())

	resp, err := svc.SetSelection(context.Background(), sess, &dto.SelectLinesRequest{
		LineIDs: []string{"l2"}, Selected: false,
	})
	require.NoError(t, err)

	assert.False(t, repo.Selection["l2"])
	for _, item := range resp.Items {
		if item.LineID == "l2" {
			assert.False(t, item.Selected)
		}
	}
	require.Len(t, sess.Cart.Selected(), 1)
}
