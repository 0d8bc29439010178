package checkout

import (
	"context"
	"fmt"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/model"
)

// OrderWriter applies the terminal result of an attempt to the local cache in
// one transaction. Implemented by internal/repository.
type OrderWriter interface {
	SaveCompletedOrder(ctx context.Context, order *model.Order, items []*model.OrderItem, lineIDs []string, idempotencyKey string) error
	MarkAttemptAbandoned(ctx context.Context, idempotencyKey string) error
}

// Reconciler applies the terminal result of a checkout attempt to local
// state. Only a confirmed success touches the cart, and only the lines that
// were part of the attempt.
type Reconciler struct {
	writer OrderWriter
}

func NewReconciler(writer OrderWriter) *Reconciler {
	return &Reconciler{writer: writer}
}

// ApplySuccess persists the order, removes exactly the submitted lines from
// the store and resolves the attempt. Lines that were not part of the attempt
// stay in the cart.
func (r *Reconciler) ApplySuccess(ctx context.Context, store *cart.Store, agg *Aggregator, att *Attempt, method PurchaseMethod, shippingAddressID int64, result *dto.OrderResult) error {
	order := &model.Order{
		OrderID:           result.OrderID,
		UserID:            att.Request.UserID,
		Status:            model.OrderStatusPending,
		PaymentStatus:     result.PaymentStatus,
		PurchaseMethod:    method.String(),
		TotalAmount:       att.Request.TotalAmount,
		ShippingFee:       agg.ShippingFee(),
		ShippingAddressID: shippingAddressID,
	}
	items := make([]*model.OrderItem, len(att.Lines))
	for i, l := range att.Lines {
		items[i] = &model.OrderItem{
			OrderID:   result.OrderID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	if err := r.writer.SaveCompletedOrder(ctx, order, items, att.LineIDs(), att.Key); err != nil {
		return fmt.Errorf("save completed order: %w", err)
	}

	store.RemoveLines(att.LineIDs())
	agg.Resolve()
	return nil
}

// Release abandons an attempt whose submission the upstream never accepted,
// freeing the next checkout to use a fresh key. The cart is untouched.
func (r *Reconciler) Release(ctx context.Context, agg *Aggregator, idempotencyKey string) error {
	if err := r.writer.MarkAttemptAbandoned(ctx, idempotencyKey); err != nil {
		return fmt.Errorf("abandon attempt: %w", err)
	}
	agg.Resolve()
	return nil
}
