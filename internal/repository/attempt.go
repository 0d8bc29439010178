package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoppingcart-backend/internal/model"
)

var ErrNoPendingAttempt = errors.New("no pending checkout attempt")

type AttemptRepository interface {
	UpsertPending(ctx context.Context, attempt *model.CheckoutAttempt) error
	FindPending(ctx context.Context, userID int64) (*model.CheckoutAttempt, error)
	MarkResolved(ctx context.Context, tx *gorm.DB, idempotencyKey, orderID string) error
	MarkAbandoned(ctx context.Context, idempotencyKey string) error
}

type attemptRepoImpl struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepoImpl{db: db}
}

func (r *attemptRepoImpl) UpsertPending(ctx context.Context, attempt *model.CheckoutAttempt) error {
	attempt.State = model.AttemptStatePending
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "idempotency_key"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"cart_fingerprint", "total_amount", "purchase_method", "line_ids", "updated_at"},
		),
	}).Create(attempt).Error
}

func (r *attemptRepoImpl) FindPending(ctx context.Context, userID int64) (*model.CheckoutAttempt, error) {
	var attempt model.CheckoutAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND state = ?", userID, model.AttemptStatePending).
		Order("updated_at DESC").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingAttempt
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepoImpl) MarkResolved(ctx context.Context, tx *gorm.DB, idempotencyKey, orderID string) error {
	return tx.WithContext(ctx).Model(&model.CheckoutAttempt{}).
		Where("idempotency_key = ?", idempotencyKey).
		Updates(map[string]interface{}{
			"state":      model.AttemptStateResolved,
			"order_id":   orderID,
			"updated_at": time.Now(),
		}).Error
}

func (r *attemptRepoImpl) MarkAbandoned(ctx context.Context, idempotencyKey string) error {
	return r.db.WithContext(ctx).Model(&model.CheckoutAttempt{}).
		Where("idempotency_key = ?", idempotencyKey).
		Updates(map[string]interface{}{
			"state":      model.AttemptStateAbandoned,
			"updated_at": time.Now(),
		}).Error
}
