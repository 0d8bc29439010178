package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/model"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/session"
)

type CheckoutService interface {
	Checkout(ctx context.Context, sess *session.Session, token string, req *dto.CheckoutRequest) (*dto.OrderResult, error)
	RecoverPending(ctx context.Context, sess *session.Session, token string) (*dto.OrderResult, error)
}

type checkoutServiceImpl struct {
	attemptRepo repository.AttemptRepository
	payment     checkout.PaymentClient
	reconciler  *checkout.Reconciler
}

func NewCheckoutService(
	attemptRepo repository.AttemptRepository,
	payment checkout.PaymentClient,
	reconciler *checkout.Reconciler,
) CheckoutService {
	return &checkoutServiceImpl{
		attemptRepo: attemptRepo,
		payment:     payment,
		reconciler:  reconciler,
	}
}

// Checkout runs one attempt end to end: validate, build the payment request,
// persist the idempotency key, submit, reconcile. Every failure path leaves
// the cart exactly as it was before the call.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, sess *session.Session, token string, req *dto.CheckoutRequest) (*dto.OrderResult, error) {
	method, cvv, err := validateMethod(req)
	if err != nil {
		return nil, err
	}

	attempt, err := sess.Aggregator.BuildPaymentRequest(sess.User.ID, sess.Cart.Selected(), req.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	attempt.Request.CVV = cvv

	// Persist the key before the wire call so a crash mid-submission cannot
	// lose it and mint a fresh one on relaunch.
	err = s.attemptRepo.UpsertPending(ctx, &model.CheckoutAttempt{
		IdempotencyKey:  attempt.Key,
		UserID:          sess.User.ID,
		CartFingerprint: attempt.Fingerprint,
		TotalAmount:     attempt.Request.TotalAmount,
		PurchaseMethod:  method.String(),
		LineIDs:         strings.Join(attempt.LineIDs(), ","),
	})
	if err != nil {
		return nil, fmt.Errorf("persist checkout attempt: %w", err)
	}

	result, err := sess.Submitter.Submit(ctx, method, req.CardID, &attempt.Request, token)
	if err != nil {
		slog.InfoContext(ctx, "checkout submission failed",
			"user_id", sess.User.ID,
			"idempotency_key", attempt.Key,
			"error", err,
		)
		return nil, err
	}

	if err := s.reconciler.ApplySuccess(ctx, sess.Cart, sess.Aggregator, attempt, method, req.ShippingAddressID, result); err != nil {
		// the charge went through; only the local cache write failed
		return nil, fmt.Errorf("reconcile order %s: %w", result.OrderID, err)
	}

	slog.InfoContext(ctx, "checkout completed",
		"user_id", sess.User.ID,
		"order_id", result.OrderID,
		"total_amount", attempt.Request.TotalAmount,
	)
	return result, nil
}

// RecoverPending resolves an attempt whose outcome the client never saw, e.g.
// after a cancelled submission or a crash. The upstream is queried by
// idempotency key: an accepted order is applied as a success, an unknown key
// releases the attempt so the next checkout starts fresh.
func (s *checkoutServiceImpl) RecoverPending(ctx context.Context, sess *session.Session, token string) (*dto.OrderResult, error) {
	pending, err := s.attemptRepo.FindPending(ctx, sess.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoPendingAttempt) {
			return nil, err
		}
		return nil, fmt.Errorf("find pending attempt: %w", err)
	}

	result, err := s.payment.GetOrderStatus(ctx, pending.IdempotencyKey, token)
	if err != nil {
		return nil, fmt.Errorf("query order status: %w", err)
	}

	if !result.Success {
		if err := s.reconciler.Release(ctx, sess.Aggregator, pending.IdempotencyKey); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "pending attempt released",
			"user_id", sess.User.ID,
			"idempotency_key", pending.IdempotencyKey,
		)
		return result, nil
	}

	attempt := restoreAttempt(sess, pending)
	method, ok := checkout.ParsePurchaseMethod(pending.PurchaseMethod)
	if !ok {
		method = checkout.MethodCOD
	}
	if err := s.reconciler.ApplySuccess(ctx, sess.Cart, sess.Aggregator, attempt, method, 0, result); err != nil {
		return nil, fmt.Errorf("reconcile recovered order %s: %w", result.OrderID, err)
	}

	slog.InfoContext(ctx, "pending attempt recovered as completed order",
		"user_id", sess.User.ID,
		"order_id", result.OrderID,
	)
	return result, nil
}

// restoreAttempt rebuilds the line subset of a persisted attempt from the
// live cart. Lines the user removed since submission are simply absent; they
// need no cart cleanup anyway.
func restoreAttempt(sess *session.Session, pending *model.CheckoutAttempt) *checkout.Attempt {
	wanted := make(map[string]bool)
	for _, id := range strings.Split(pending.LineIDs, ",") {
		if id != "" {
			wanted[id] = true
		}
	}

	var lines []cart.Line
	for _, l := range sess.Cart.Lines() {
		if wanted[l.LineID] {
			lines = append(lines, l)
		}
	}

	items := make([]dto.PaymentItem, len(lines))
	for i, l := range lines {
		items[i] = dto.PaymentItem{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	return &checkout.Attempt{
		Key:         pending.IdempotencyKey,
		Fingerprint: pending.CartFingerprint,
		Lines:       lines,
		Request: dto.PaymentRequest{
			UserID:         pending.UserID,
			IdempotencyKey: pending.IdempotencyKey,
			TotalAmount:    pending.TotalAmount,
			Status:         "pending",
			Items:          items,
		},
	}
}

func validateMethod(req *dto.CheckoutRequest) (checkout.PurchaseMethod, int, error) {
	method, ok := checkout.ParsePurchaseMethod(req.PurchaseMethod)
	if !ok || !method.Submittable() {
		return "", 0, checkout.ErrNoPaymentMethod
	}
	if method != checkout.MethodCard {
		return method, 0, nil
	}

	if req.CardID == 0 {
		return "", 0, checkout.ErrNoCardSelected
	}
	if len(req.CVV) < 3 || len(req.CVV) > 4 {
		return "", 0, checkout.ErrInvalidCVV
	}
	cvv, err := strconv.Atoi(req.CVV)
	if err != nil || cvv < 0 {
		return "", 0, checkout.ErrInvalidCVV
	}
	return method, cvv, nil
}
