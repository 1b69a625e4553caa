package store

import (
	"context"
	"database/sql"
)

// KeyValueStore persists small string settings such as the site theme.
type KeyValueStore struct {
	rdb, rwdb *sql.DB
}

func NewKeyValueStore(rdb, rwdb *sql.DB) *KeyValueStore {
	return &KeyValueStore{rdb, rwdb}
}

// Get returns the value stored under key or sql.ErrNoRows.
func (kvs *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := kvs.rdb.QueryRowContext(
		ctx,
		"select setting_value from settings where setting_key = $1",
		key,
	).Scan(&value)
	return value, err
}

// SetMany writes every pair in one transaction.
func (kvs *KeyValueStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := kvs.rwdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for key, value := range values {
		if _, err := tx.ExecContext(
			ctx,
			`insert into settings (setting_key, setting_value)
			values ($1, $2)
			on conflict (setting_key)
			do update set setting_value = excluded.setting_value`,
			key, value,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (kvs *KeyValueStore) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := kvs.rwdb.ExecContext(
			ctx,
			"delete from settings where setting_key = $1",
			key,
		); err != nil {
			return err
		}
	}
	return nil
}
