package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shoppingcart-backend/internal/model"
)

// CheckoutStore commits the terminal result of a checkout attempt in a single
// transaction: order + items inserted, attempt resolved, submitted cart lines
// removed. It implements checkout.OrderWriter.
type CheckoutStore struct {
	db       *gorm.DB
	orders   OrderRepository
	attempts AttemptRepository
}

func NewCheckoutStore(db *gorm.DB, orders OrderRepository, attempts AttemptRepository) *CheckoutStore {
	return &CheckoutStore{db: db, orders: orders, attempts: attempts}
}

func (s *CheckoutStore) SaveCompletedOrder(ctx context.Context, order *model.Order, items []*model.OrderItem, lineIDs []string, idempotencyKey string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orders.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		if err := s.attempts.MarkResolved(ctx, tx, idempotencyKey, order.OrderID); err != nil {
			return fmt.Errorf("resolve attempt: %w", err)
		}
		if len(lineIDs) > 0 {
			err := tx.WithContext(ctx).
				Where("user_id = ? AND line_id IN ?", order.UserID, lineIDs).
				Delete(&model.CartLine{}).Error
			if err != nil {
				return fmt.Errorf("remove purchased cart lines: %w", err)
			}
		}
		return nil
	})
}

func (s *CheckoutStore) MarkAttemptAbandoned(ctx context.Context, idempotencyKey string) error {
	return s.attempts.MarkAbandoned(ctx, idempotencyKey)
}
