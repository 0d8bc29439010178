package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/model"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/session"
)

// MockCartRepository implements repository.CartRepository for testing.
type MockCartRepository struct {
	Lines     []*model.CartLine
	Upserts   []*model.CartLine
	Deleted   []string
	Cleared   bool
	Selection map[string]bool
	Err       error
}

func (m *MockCartRepository) GetLines(_ context.Context, _ int64) ([]*model.CartLine, error) {
	return m.Lines, m.Err
}

func (m *MockCartRepository) UpsertLine(_ context.Context, line *model.CartLine) error {
	m.Upserts = append(m.Upserts, line)
	return m.Err
}

func (m *MockCartRepository) DeleteLine(_ context.Context, _ int64, lineID string) error {
	m.Deleted = append(m.Deleted, lineID)
	return m.Err
}

func (m *MockCartRepository) ClearLines(_ context.Context, _ int64) error {
	m.Cleared = true
	return m.Err
}

func (m *MockCartRepository) SetSelected(_ context.Context, _ int64, lineIDs []string, selected bool) error {
	if m.Selection == nil {
		m.Selection = make(map[string]bool)
	}
	for _, id := range lineIDs {
		m.Selection[id] = selected
	}
	return m.Err
}

// MockAttemptRepository implements repository.AttemptRepository for testing.
type MockAttemptRepository struct {
	Pending   *model.CheckoutAttempt
	Upserted  []*model.CheckoutAttempt
	Resolved  []string
	Abandoned []string
	Err       error
}

func (m *MockAttemptRepository) UpsertPending(_ context.Context, attempt *model.CheckoutAttempt) error {
	m.Upserted = append(m.Upserted, attempt)
	return m.Err
}

func (m *MockAttemptRepository) FindPending(_ context.Context, _ int64) (*model.CheckoutAttempt, error) {
	if m.Pending == nil {
		return nil, repository.ErrNoPendingAttempt
	}
	return m.Pending, nil
}

func (m *MockAttemptRepository) MarkResolved(_ context.Context, _ *gorm.DB, key, _ string) error {
	m.Resolved = append(m.Resolved, key)
	return nil
}

func (m *MockAttemptRepository) MarkAbandoned(_ context.Context, key string) error {
	m.Abandoned = append(m.Abandoned, key)
	return nil
}

// MockPaymentClient implements checkout.PaymentClient for testing.
type MockPaymentClient struct {
	Result       *dto.OrderResult
	StatusResult *dto.OrderResult
	Err          error
	Calls        int
	LastRequest  *dto.PaymentRequest
}

func (m *MockPaymentClient) ProcessCardPayment(_ context.Context, _ int64, req *dto.PaymentRequest, _ string) (*dto.OrderResult, error) {
	m.Calls++
	m.LastRequest = req
	return m.Result, m.Err
}

func (m *MockPaymentClient) CreateCODOrder(_ context.Context, req *dto.PaymentRequest, _ string) (*dto.OrderResult, error) {
	m.Calls++
	m.LastRequest = req
	return m.Result, m.Err
}

func (m *MockPaymentClient) GetOrderStatus(_ context.Context, _, _ string) (*dto.OrderResult, error) {
	if m.StatusResult != nil {
		return m.StatusResult, nil
	}
	return m.Result, m.Err
}

// MockOrderWriter implements checkout.OrderWriter for testing.
type MockOrderWriter struct {
	SavedOrder   *model.Order
	SavedItems   []*model.OrderItem
	SavedLineIDs []string
	SavedKey     string
	Abandoned    []string
	SaveErr      error
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
	m.Abandoned = append(m.Abandoned, key)
	return nil
}

// MockOrderRepository implements repository.OrderRepository for testing.
type MockOrderRepository struct {
	Orders []*model.Order
	Items  map[string][]*model.OrderItem
	Err    error
}

func (m *MockOrderRepository) Create(_ context.Context, _ *gorm.DB, order *model.Order) error {
	m.Orders = append(m.Orders, order)
	return m.Err
}

func (m *MockOrderRepository) CreateOrderItems(_ context.Context, _ *gorm.DB, items []*model.OrderItem) error {
	return m.Err
}

func (m *MockOrderRepository) FindByUser(_ context.Context, _ int64) ([]*model.Order, error) {
	return m.Orders, m.Err
}

func (m *MockOrderRepository) GetOrderItems(_ context.Context, orderID string) ([]*model.OrderItem, error) {
	return m.Items[orderID], m.Err
}

func newTestSession(payment checkout.PaymentClient, lines []cart.Line) *session.Session {
	return &session.Session{
		User:       session.User{ID: 42, Email: "buyer@example.com"},
		Cart:       cart.NewStore(lines),
		Aggregator: checkout.NewAggregator(30000),
		Submitter:  checkout.NewSubmitter(payment, time.Second),
	}
}

func exampleCartLines() []cart.Line {
	return []cart.Line{
		{LineID: "l1", ProductID: 7, Quantity: 2, UnitPrice: 120000, Selected: true},
		{LineID: "l2", ProductID: 10, Quantity: 1, UnitPrice: 149000, Selected: true},
	}
}
