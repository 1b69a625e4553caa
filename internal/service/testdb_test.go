package service

import (
	"database/sql"
	"testing"

	"github.com/haatos/simple-shop/internal/store"

	_ "modernc.org/sqlite"
)

type testStores struct {
	accounts *store.AccountSQLStore
	products *store.ProductSQLStore
	carts    *store.CartSQLStore
	orders   *store.OrderSQLStore
	chats    *store.ChatSQLStore
	settings *store.KeyValueStore
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		t.Fatal(err)
	}
	if err := store.RunMigrations(db, "sqlite"); err != nil {
		t.Fatal(err)
	}
	return &testStores{
		accounts: store.NewAccountSQLStore(db, db),
		products: store.NewProductSQLStore(db, db),
		carts:    store.NewCartSQLStore(db, db),
		orders:   store.NewOrderSQLStore(db, db),
		chats:    store.NewChatSQLStore(db, db),
		settings: store.NewKeyValueStore(db, db),
	}
}
