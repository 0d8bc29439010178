package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shoppingcart-backend/internal/middleware"
	"shoppingcart-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	login, err := middleware.RequireLogin(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.GetOrders(ctx, login.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
