package service

import (
	"context"
	"errors"
	"fmt"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/config"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/session"
)

// SessionLoader hydrates a user session from the local cache: cart lines into
// the store, and the unresolved checkout attempt (if any) back into the
// aggregator so a retry after restart keeps its idempotency key.
type SessionLoader struct {
	cartRepo    repository.CartRepository
	attemptRepo repository.AttemptRepository
	payment     checkout.PaymentClient
	cfg         config.Checkout
}

func NewSessionLoader(
	cartRepo repository.CartRepository,
	attemptRepo repository.AttemptRepository,
	payment checkout.PaymentClient,
	cfg config.Checkout,
) *SessionLoader {
	return &SessionLoader{
		cartRepo:    cartRepo,
		attemptRepo: attemptRepo,
		payment:     payment,
		cfg:         cfg,
	}
}

func (l *SessionLoader) LoadSession(ctx context.Context, user session.User) (*session.Session, error) {
	rows, err := l.cartRepo.GetLines(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart lines: %w", err)
	}

	lines := make([]cart.Line, len(rows))
	for i, row := range rows {
		lines[i] = cart.Line{
			LineID:    row.LineID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			Variant:   cart.Variant{Size: row.VariantSize, Color: row.VariantColor},
			Selected:  row.Selected,
		}
	}

	agg := checkout.NewAggregator(l.cfg.ShippingFee)
	attempt, err := l.attemptRepo.FindPending(ctx, user.ID)
	switch {
	case err == nil:
		agg.Restore(attempt.IdempotencyKey, attempt.CartFingerprint)
	case errors.Is(err, repository.ErrNoPendingAttempt):
		// fresh session
	default:
		return nil, fmt.Errorf("load pending attempt: %w", err)
	}

	return &session.Session{
		User:       user,
		Cart:       cart.NewStore(lines),
		Aggregator: agg,
		Submitter:  checkout.NewSubmitter(l.payment, l.cfg.SubmitTimeout),
	}, nil
}
