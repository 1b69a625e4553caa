package store

import (
	"context"
	"database/sql"
	"time"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderPaid       OrderStatus = "paid"
	OrderCancelled  OrderStatus = "cancelled"
)

type Order struct {
	OrderID       string       `json:"order_id"`
	AccountID     int64        `json:"account_id"`
	Amount        int64        `json:"amount"`
	PaymentMethod string       `json:"payment_method"`
	Status        OrderStatus  `json:"status"`
	CreatedOn     time.Time    `json:"created_on"`
	CompletedOn   sql.NullTime `json:"-"`
}

type OrderStore interface {
	CreateOrder(context.Context, string, int64, int64, string) (*Order, error)
	ReadOrderByID(context.Context, string) (*Order, error)
	ListOrdersByAccountID(context.Context, int64) ([]*Order, error)
	ListProcessingOrders(context.Context) ([]*Order, error)
	HasProcessingOrder(context.Context, int64) (bool, error)
	CompleteOrder(context.Context, string, time.Time) error
	CancelOrder(context.Context, string) error
}
