package store

import "context"

type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
}

func (cl CartLine) Subtotal() int64 {
	return cl.Price * cl.Quantity
}

type CartStore interface {
	AddCartLine(context.Context, int64, int64) error
	ListCartLines(context.Context, int64) ([]*CartLine, error)
	DeleteCartLine(context.Context, int64, int64) error
}
