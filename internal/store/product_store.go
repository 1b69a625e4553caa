package store

import (
	"context"
	"time"
)

type Product struct {
	ProductID int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	InStock   bool      `json:"in_stock"`
	CreatedOn time.Time `json:"created_on"`
}

type ProductStore interface {
	CreateProduct(context.Context, *Product) (*Product, error)
	ReadProductByID(context.Context, int64) (*Product, error)
	ListProducts(context.Context) ([]*Product, error)
	CountProducts(context.Context) (int64, error)
	DeleteProduct(context.Context, int64) error
}
