package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/dto"
	"shoppingcart-backend/internal/middleware"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/service"
	"shoppingcart-backend/internal/session"
)

type CheckoutHandler struct {
	sessions        *session.Manager
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(sessions *session.Manager, checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkoutService: checkoutService}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	login, err := middleware.RequireLogin(c)
	if err != nil {
		return err
	}
	sess, err := h.sessions.Get(ctx, login.User)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.Checkout(ctx, sess, login.Token, &req)
	if err != nil {
		return checkoutHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) RecoverPending(c echo.Context) error {
	ctx := c.Request().Context()

	login, err := middleware.RequireLogin(c)
	if err != nil {
		return err
	}
	sess, err := h.sessions.Get(ctx, login.User)
	if err != nil {
		return err
	}

	result, err := h.checkoutService.RecoverPending(ctx, sess, login.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNoPendingAttempt) {
			return echo.NewHTTPError(http.StatusNotFound, "no pending checkout attempt")
		}
		return checkoutHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) SubmissionState(c echo.Context) error {
	ctx := c.Request().Context()

	login, err := middleware.RequireLogin(c)
	if err != nil {
		return err
	}
	sess, err := h.sessions.Get(ctx, login.User)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"state": sess.Submitter.State().String(),
	})
}

// checkoutHTTPError maps the checkout error taxonomy onto HTTP statuses. All
// four kinds carry a user-facing message; nothing leaks as a bare 500.
func checkoutHTTPError(err error) error {
	var cerr *checkout.Error
	if !errors.As(err, &cerr) {
		return err
	}

	var code int
	switch cerr.Kind {
	case checkout.KindValidation:
		code = http.StatusBadRequest
	case checkout.KindUnauthenticated:
		code = http.StatusUnauthorized
	case checkout.KindNetwork:
		code = http.StatusServiceUnavailable
	case checkout.KindServerRejected:
		code = http.StatusUnprocessableEntity
	default:
		code = http.StatusInternalServerError
	}
	return echo.NewHTTPError(code, cerr.Message)
}
