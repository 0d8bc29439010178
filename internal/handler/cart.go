package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/middleware"
	"shoppingcart-backend/internal/service"
	"shoppingcart-backend/internal/session"
)

type CartHandler struct {
	sessions    *session.Manager
	cartService service.CartService
}

func NewCartHandler(sessions *session.Manager, cartService service.CartService) *CartHandler {
	return &CartHandler{sessions: sessions, cartService: cartService}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.cartService.GetCart(ctx, sess))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	result, err := h.cartService.AddToCart(ctx, sess, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.cartService.UpdateQuantity(ctx, sess, c.Param("lineID"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CartHandler) RemoveLine(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	result, err := h.cartService.RemoveLine(ctx, sess, c.Param("lineID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	if err := h.cartService.ClearCart(ctx, sess); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) SetSelection(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.SelectLinesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.cartService.SetSelection(ctx, sess, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CartHandler) session(c echo.Context) (*session.Session, error) {
	login, err := middleware.RequireLogin(c)
	if err != nil {
		return nil, err
	}
	return h.sessions.Get(c.Request().Context(), login.User)
}
