package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type CartSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewCartSQLStore(rdb, rwdb *sql.DB) *CartSQLStore {
	return &CartSQLStore{rdb, rwdb}
}

// AddCartLine adds one unit of the product, merging with an existing line.
func (store *CartSQLStore) AddCartLine(ctx context.Context, accountID, productID int64) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`
		insert into cart_lines (account_id, product_id, quantity)
		values ($1, $2, 1)
		on conflict (account_id, product_id)
		do update set quantity = cart_lines.quantity + 1
		`,
		accountID, productID,
	)
	return err
}

func (store *CartSQLStore) ListCartLines(ctx context.Context, accountID int64) ([]*CartLine, error) {
	lines := make([]*CartLine, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &lines,
		`
		select
			p.product_id,
			p.name,
			p.price,
			p.image,
			c.quantity
		from cart_lines c
		join products p
		on p.product_id = c.product_id
		where c.account_id = $1
		order by p.product_id
		`,
		accountID,
	)
	return lines, err
}

func (store *CartSQLStore) DeleteCartLine(ctx context.Context, accountID, productID int64) error {
	return execOne(
		ctx, store.rwdb,
		`delete from cart_lines where account_id = $1 and product_id = $2`,
		accountID, productID,
	)
}
