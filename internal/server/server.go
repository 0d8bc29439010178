package server

import (
	"shoppingcart-backend/internal/handler"
	appmw "shoppingcart-backend/internal/middleware"
	"shoppingcart-backend/internal/service"
	"shoppingcart-backend/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	jwtSecret       string
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
}

func NewServer(
	jwtSecret string,
	sessions *session.Manager,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		jwtSecret:       jwtSecret,
		cartHandler:     handler.NewCartHandler(sessions, cartService),
		checkoutHandler: handler.NewCheckoutHandler(sessions, checkoutService),
		orderHandler:    handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api/v1")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authed := api.Group("", appmw.Auth(s.jwtSecret))

	// -------- cart --------
	authed.GET("/carts", s.cartHandler.GetCart)
	authed.POST("/carts", s.cartHandler.AddToCart)
	authed.PUT("/carts/items/:lineID", s.cartHandler.UpdateQuantity)
	authed.DELETE("/carts/items/:lineID", s.cartHandler.RemoveLine)
	authed.DELETE("/carts", s.cartHandler.ClearCart)
	authed.POST("/carts/selection", s.cartHandler.SetSelection)

	// -------- checkout --------
	authed.POST("/checkout", s.checkoutHandler.Checkout)
	authed.POST("/checkout/recover", s.checkoutHandler.RecoverPending)
	authed.GET("/checkout/state", s.checkoutHandler.SubmissionState)

	// -------- orders --------
	authed.GET("/orders", s.orderHandler.GetOrders)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
