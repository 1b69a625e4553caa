package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type OrderSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewOrderSQLStore(rdb, rwdb *sql.DB) *OrderSQLStore {
	return &OrderSQLStore{rdb, rwdb}
}

func (store *OrderSQLStore) CreateOrder(
	ctx context.Context,
	orderID string,
	accountID int64,
	amount int64,
	paymentMethod string,
) (*Order, error) {
	order := new(Order)
	err := sqlscan.Get(
		ctx, store.rwdb, order,
		`
		insert into orders (
			order_id,
			account_id,
			amount,
			payment_method,
			status
		)
		values ($1, $2, $3, $4, $5)
		returning *
		`,
		orderID,
		accountID,
		amount,
		paymentMethod,
		OrderProcessing,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (store *OrderSQLStore) ReadOrderByID(ctx context.Context, orderID string) (*Order, error) {
	order := new(Order)
	err := sqlscan.Get(
		ctx, store.rdb, order,
		`select * from orders where order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (store *OrderSQLStore) ListOrdersByAccountID(
	ctx context.Context,
	accountID int64,
) ([]*Order, error) {
	orders := make([]*Order, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &orders,
		`select * from orders where account_id = $1 order by created_on desc`,
		accountID,
	)
	return orders, err
}

func (store *OrderSQLStore) ListProcessingOrders(ctx context.Context) ([]*Order, error) {
	orders := make([]*Order, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &orders,
		`select * from orders where status = $1`,
		OrderProcessing,
	)
	return orders, err
}

// HasProcessingOrder reports whether the account has an order waiting for its
// payment job.
func (store *OrderSQLStore) HasProcessingOrder(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := store.rdb.QueryRowContext(
		ctx,
		`select exists (
			select 1 from orders
			where account_id = $1
			and status = $2
		)`,
		accountID, OrderProcessing,
	).Scan(&exists)
	return exists, err
}

// CompleteOrder marks a processing order paid and empties the owner's cart in
// one transaction. The cart is frozen while the order is processing, so the
// deleted lines are the ones the order was priced on. An order that is no
// longer processing yields sql.ErrNoRows.
func (store *OrderSQLStore) CompleteOrder(
	ctx context.Context,
	orderID string,
	completedOn time.Time,
) error {
	tx, err := store.rwdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var accountID int64
	err = tx.QueryRowContext(
		ctx,
		`update orders
		set status = $1,
			completed_on = $2
		where order_id = $3
		and status = $4
		returning account_id`,
		OrderPaid, completedOn, orderID, OrderProcessing,
	).Scan(&accountID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(
		ctx,
		`delete from cart_lines where account_id = $1`,
		accountID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (store *OrderSQLStore) CancelOrder(ctx context.Context, orderID string) error {
	return execOne(
		ctx, store.rwdb,
		`update orders
		set status = $1
		where order_id = $2
		and status = $3`,
		OrderCancelled, orderID, OrderProcessing,
	)
}
