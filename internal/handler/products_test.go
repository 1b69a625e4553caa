package handler

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/haatos/simple-shop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_GetProducts(t *testing.T) {
	t.Run("success - products listed", func(t *testing.T) {
		// arrange
		mockService := new(testutil.MockCatalogService)
		mockService.On("ListProducts", mock.Anything).Return([]*store.Product{
			{ProductID: 1, Name: "Energy Pack", Price: 299, Category: "Energy", InStock: true},
		}, nil)
		c, rec := newJSONContext(http.MethodGet, "/api/products", "")
		h := NewProductHandler(mockService)

		// act
		err := h.GetProducts(c)

		// assert
		assert.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `"name":"Energy Pack"`)
	})
	t.Run("success - empty catalog is an empty list", func(t *testing.T) {
		// arrange
		mockService := new(testutil.MockCatalogService)
		mockService.On("ListProducts", mock.Anything).Return(nil, nil)
		c, rec := newJSONContext(http.MethodGet, "/api/products", "")
		h := NewProductHandler(mockService)

		// act
		err := h.GetProducts(c)

		// assert
		assert.NoError(t, err)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestProductHandler_PostProduct(t *testing.T) {
	t.Run("success - product created", func(t *testing.T) {
		// arrange
		juniorAdmin := generateAccount(access.JuniorAdmin, false)
		params := service.ProductParams{Name: "X", Price: 10, Category: "Y"}
		mockService := new(testutil.MockCatalogService)
		mockService.On("AddProduct", mock.Anything, juniorAdmin, params).Return(&store.Product{
			ProductID: 7, Name: "X", Price: 10, Category: "Y", Image: "/placeholder.svg", InStock: true,
		}, nil)
		c, rec := newJSONContext(
			http.MethodPost, "/api/products",
			`{"name":"X","price":10,"category":"Y"}`,
		)
		c.Set(ctxAccountKey, juniorAdmin)
		h := NewProductHandler(mockService)

		// act
		err := h.PostProduct(c)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"in_stock":true`)
	})
	t.Run("failure - regular user is forbidden", func(t *testing.T) {
		// arrange
		user := generateAccount(access.RegularUser, false)
		mockService := new(testutil.MockCatalogService)
		mockService.On("AddProduct", mock.Anything, user, mock.Anything).
			Return(nil, &access.AuthorizationError{Action: access.AddProduct, Role: access.RegularUser})
		c, _ := newJSONContext(
			http.MethodPost, "/api/products",
			`{"name":"X","price":10,"category":"Y"}`,
		)
		c.Set(ctxAccountKey, user)
		h := NewProductHandler(mockService)

		// act
		err := h.PostProduct(c)

		// assert
		status, _ := errorResponse(err)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	t.Run("success - product deleted", func(t *testing.T) {
		// arrange
		superAdmin := generateAccount(access.SuperAdmin, false)
		mockService := new(testutil.MockCatalogService)
		mockService.On("DeleteProduct", mock.Anything, superAdmin, int64(3)).Return(nil)
		c, rec := newJSONContext(http.MethodDelete, "/", "")
		c.SetPath("/api/products/:product_id")
		c.SetParamNames("product_id")
		c.SetParamValues("3")
		c.Set(ctxAccountKey, superAdmin)
		h := NewProductHandler(mockService)

		// act
		err := h.DeleteProduct(c)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
	t.Run("failure - missing product is not found", func(t *testing.T) {
		// arrange
		superAdmin := generateAccount(access.SuperAdmin, false)
		mockService := new(testutil.MockCatalogService)
		mockService.On("DeleteProduct", mock.Anything, superAdmin, int64(404)).Return(sql.ErrNoRows)
		c, _ := newJSONContext(http.MethodDelete, "/", "")
		c.SetPath("/api/products/:product_id")
		c.SetParamNames("product_id")
		c.SetParamValues("404")
		c.Set(ctxAccountKey, superAdmin)
		h := NewProductHandler(mockService)

		// act
		err := h.DeleteProduct(c)

		// assert
		status, _ := errorResponse(err)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
