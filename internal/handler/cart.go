package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type CartServicer interface {
	GetCart(context.Context, *store.Account) (*service.Cart, error)
	AddToCart(context.Context, *store.Account, int64) (*service.Cart, error)
	RemoveFromCart(context.Context, *store.Account, int64) (*service.Cart, error)
}

func SetupCartRoutes(g *echo.Group, cartService CartServicer) {
	h := NewCartHandler(cartService)
	cartGroup := g.Group("/cart", IsAuthenticated)
	cartGroup.GET("", h.GetCart)
	cartGroup.POST("/items", h.PostCartItem)
	cartGroup.DELETE("/items/:product_id", h.DeleteCartItem)
}

type CartHandler struct {
	cartService CartServicer
}

func NewCartHandler(cartService CartServicer) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartService.GetCart(c.Request().Context(), getCtxAccount(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) PostCartItem(c echo.Context) error {
	p := new(ProductIDParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid cart item")
	}
	cart, err := h.cartService.AddToCart(c.Request().Context(), getCtxAccount(c), p.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) DeleteCartItem(c echo.Context) error {
	p := new(ProductIDParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid product id")
	}
	cart, err := h.cartService.RemoveFromCart(c.Request().Context(), getCtxAccount(c), p.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
