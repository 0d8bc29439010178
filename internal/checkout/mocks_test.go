package checkout

import (
	"context"
	"sync/atomic"

	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/model"
)

// MockPaymentClient implements PaymentClient for testing.
type MockPaymentClient struct {
	Result      *dto.OrderResult
	Err         error
	Calls       atomic.Int64
	LastRequest *dto.PaymentRequest
	Block       chan struct{} // when set, calls wait until closed
}

func (m *MockPaymentClient) ProcessCardPayment(ctx context.Context, _ int64, req *dto.PaymentRequest, _ string) (*dto.OrderResult, error) {
	return m.call(ctx, req)
}

func (m *MockPaymentClient) CreateCODOrder(ctx context.Context, req *dto.PaymentRequest, _ string) (*dto.OrderResult, error) {
	return m.call(ctx, req)
}

func (m *MockPaymentClient) GetOrderStatus(_ context.Context, _, _ string) (*dto.OrderResult, error) {
	return m.Result, m.Err
}

func (m *MockPaymentClient) call(ctx context.Context, req *dto.PaymentRequest) (*dto.OrderResult, error) {
	m.Calls.Add(1)
	m.LastRequest = req
	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// MockOrderWriter implements OrderWriter for testing.
type MockOrderWriter struct {
	SavedOrder    *model.Order
	SavedItems    []*model.OrderItem
	SavedLineIDs  []string
	SavedKey      string
	AbandonedKeys []string
	SaveErr       error
}

func (m *MockOrderWriter) SaveCompletedOrder(_ context.Context, order *model.Order, items []*model.OrderItem, lineIDs []string, key string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedOrder = order
	m.SavedItems = items
	m.SavedLineIDs = lineIDs
	m.SavedKey = key
	return nil
}

func (m *MockOrderWriter) MarkAttemptAbandoned(_ context.Context, key string) error {
	m.AbandonedKeys = append(m.AbandonedKeys, key)
	return nil
}
