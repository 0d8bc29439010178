package service

import (
	"context"
	"fmt"

	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/repository"
)

type OrderService interface {
	GetOrders(ctx context.Context, userID int64) ([]*dto.OrderResponse, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{orderRepo: orderRepo}
}

func (s *orderServiceImpl) GetOrders(ctx context.Context, userID int64) ([]*dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.OrderID)
		if err != nil {
			return nil, fmt.Errorf("list order items: %w", err)
		}

		itemDtos := make([]dto.OrderItemResponse, len(items))
		for j, item := range items {
			itemDtos[j] = dto.OrderItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
		}
		out[i] = &dto.OrderResponse{
			OrderID:        order.OrderID,
			Status:         order.Status,
			PaymentStatus:  order.PaymentStatus,
			PurchaseMethod: order.PurchaseMethod,
			TotalAmount:    order.TotalAmount,
			ShippingFee:    order.ShippingFee,
			Items:          itemDtos,
		}
	}
	return out, nil
}
