package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type CatalogServicer interface {
	ListProducts(context.Context) ([]*store.Product, error)
	GetProduct(context.Context, int64) (*store.Product, error)
	AddProduct(context.Context, *store.Account, service.ProductParams) (*store.Product, error)
	DeleteProduct(context.Context, *store.Account, int64) error
}

func SetupProductRoutes(g *echo.Group, catalogService CatalogServicer) {
	h := NewProductHandler(catalogService)
	g.GET("/products", h.GetProducts)
	g.GET("/products/:product_id", h.GetProduct)
	g.POST("/products", h.PostProduct, IsAuthenticated)
	g.DELETE("/products/:product_id", h.DeleteProduct, IsAuthenticated)
}

type ProductHandler struct {
	catalogService CatalogServicer
}

func NewProductHandler(catalogService CatalogServicer) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.catalogService.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = make([]*store.Product, 0)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	p := new(ProductIDParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid product id")
	}
	product, err := h.catalogService.GetProduct(c.Request().Context(), p.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) PostProduct(c echo.Context) error {
	p := new(service.ProductParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid product data")
	}
	product, err := h.catalogService.AddProduct(c.Request().Context(), getCtxAccount(c), *p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	p := new(ProductIDParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid product id")
	}
	if err := h.catalogService.DeleteProduct(
		c.Request().Context(),
		getCtxAccount(c),
		p.ProductID,
	); err != nil {
		return err
	}
	return noContent(c)
}
