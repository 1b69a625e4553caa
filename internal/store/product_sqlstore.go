package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type ProductSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewProductSQLStore(rdb, rwdb *sql.DB) *ProductSQLStore {
	return &ProductSQLStore{rdb, rwdb}
}

func (store *ProductSQLStore) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	product := new(Product)
	err := sqlscan.Get(
		ctx, store.rwdb, product,
		`
		insert into products (
			name,
			price,
			category,
			image,
			in_stock
		)
		values ($1, $2, $3, $4, $5)
		returning *
		`,
		p.Name,
		p.Price,
		p.Category,
		p.Image,
		p.InStock,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (store *ProductSQLStore) ReadProductByID(ctx context.Context, productID int64) (*Product, error) {
	product := new(Product)
	err := sqlscan.Get(
		ctx, store.rdb, product,
		`select * from products where product_id = $1`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (store *ProductSQLStore) ListProducts(ctx context.Context) ([]*Product, error) {
	products := make([]*Product, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &products,
		`select * from products order by product_id`,
	)
	return products, err
}

func (store *ProductSQLStore) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := store.rdb.QueryRowContext(ctx, `select count(*) from products`).Scan(&count)
	return count, err
}

func (store *ProductSQLStore) DeleteProduct(ctx context.Context, productID int64) error {
	return execOne(
		ctx, store.rwdb,
		`delete from products where product_id = $1`,
		productID,
	)
}
