package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"shoppingcart-backend/internal/dto"
)

// PaymentClient is the upstream payment-processor API as the submitter needs
// it. Implemented by internal/client.
type PaymentClient interface {
	ProcessCardPayment(ctx context.Context, cardID int64, req *dto.PaymentRequest, token string) (*dto.OrderResult, error)
	CreateCODOrder(ctx context.Context, req *dto.PaymentRequest, token string) (*dto.OrderResult, error)
	GetOrderStatus(ctx context.Context, idempotencyKey, token string) (*dto.OrderResult, error)
}

type State string

const (
	StateIdle       State = "IDLE"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) String() string { return string(s) }

// Submitter delivers one PaymentRequest at a time to the upstream endpoint.
// State machine: Idle → Submitting → {Succeeded | Failed}. A Failed →
// Submitting transition happens only on an explicit re-submission; while a
// call is in flight every further submission is rejected.
type Submitter struct {
	mu      sync.Mutex
	state   State
	client  PaymentClient
	timeout time.Duration
}

func NewSubmitter(client PaymentClient, timeout time.Duration) *Submitter {
	return &Submitter{state: StateIdle, client: client, timeout: timeout}
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit performs the single network call of a checkout attempt. It mutates
// no cart state; callers apply the result through the Reconciler. The error,
// when non-nil, is always a *Error.
func (s *Submitter) Submit(ctx context.Context, method PurchaseMethod, cardID int64, req *dto.PaymentRequest, token string) (*dto.OrderResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		result *dto.OrderResult
		err    error
	)
	switch method {
	case MethodCard:
		result, err = s.client.ProcessCardPayment(ctx, cardID, req, token)
	case MethodCOD:
		result, err = s.client.CreateCODOrder(ctx, req, token)
	default:
		s.setState(StateFailed)
		return nil, ErrNoPaymentMethod
	}

	if err != nil {
		s.setState(StateFailed)
		return nil, classify(err)
	}
	if !result.Success {
		s.setState(StateFailed)
		return nil, NewError(KindServerRejected, result.Message, nil)
	}

	s.setState(StateSucceeded)
	return result, nil
}

func (s *Submitter) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// classify maps transport and client errors onto the checkout taxonomy. A
// timeout or cancellation is a retryable network error: the cart is left
// alone and the same key can be resubmitted or reconciled later.
func classify(err error) *Error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewError(KindNetwork, "payment request timed out", err)
	}
	return NewError(KindNetwork, "payment service unreachable", err)
}
