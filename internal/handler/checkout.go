package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type CheckoutServicer interface {
	Checkout(context.Context, *store.Account, service.CheckoutParams) (*store.Order, error)
	GetOrder(context.Context, *store.Account, string) (*store.Order, error)
	ListOrders(context.Context, *store.Account) ([]*store.Order, error)
	CancelOrder(context.Context, *store.Account, string) (*store.Order, error)
}

func SetupCheckoutRoutes(g *echo.Group, checkoutService CheckoutServicer, guard *InFlightGuard) {
	h := NewCheckoutHandler(checkoutService)
	g.POST("/checkout", h.PostCheckout, IsAuthenticated, guard.Middleware("checkout"))
	ordersGroup := g.Group("/orders", IsAuthenticated)
	ordersGroup.GET("", h.GetOrders)
	ordersGroup.GET("/:order_id", h.GetOrder)
	ordersGroup.DELETE("/:order_id", h.DeleteOrder)
}

type CheckoutHandler struct {
	checkoutService CheckoutServicer
}

func NewCheckoutHandler(checkoutService CheckoutServicer) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// PostCheckout accepts the order. Payment completes asynchronously; poll
// GET /orders/:order_id for the final status.
func (h *CheckoutHandler) PostCheckout(c echo.Context) error {
	p := new(service.CheckoutParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid checkout data")
	}
	o, err := h.checkoutService.Checkout(c.Request().Context(), getCtxAccount(c), *p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, o)
}

func (h *CheckoutHandler) GetOrders(c echo.Context) error {
	orders, err := h.checkoutService.ListOrders(c.Request().Context(), getCtxAccount(c))
	if err != nil {
		return err
	}
	if orders == nil {
		orders = make([]*store.Order, 0)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	p := new(OrderParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid order id")
	}
	o, err := h.checkoutService.GetOrder(c.Request().Context(), getCtxAccount(c), p.OrderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

func (h *CheckoutHandler) DeleteOrder(c echo.Context) error {
	p := new(OrderParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid order id")
	}
	o, err := h.checkoutService.CancelOrder(c.Request().Context(), getCtxAccount(c), p.OrderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}
