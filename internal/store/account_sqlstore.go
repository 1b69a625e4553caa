package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/haatos/simple-shop/internal/access"
)

type AccountSQLStore struct {
	rdb  *sql.DB
	rwdb *sql.DB
}

func NewAccountSQLStore(rdb, rwdb *sql.DB) *AccountSQLStore {
	return &AccountSQLStore{rdb, rwdb}
}

func (store *AccountSQLStore) CreateAccount(
	ctx context.Context,
	email string,
	name string,
	passwordHash string,
	role access.Role,
) (*Account, error) {
	account := new(Account)
	err := sqlscan.Get(
		ctx, store.rwdb, account,
		`
		insert into accounts (
			email,
			name,
			password_hash,
			role_id
		)
		values ($1, $2, $3, $4)
		returning *
		`,
		email,
		name,
		passwordHash,
		role,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (store *AccountSQLStore) ReadAccountByID(ctx context.Context, accountID int64) (*Account, error) {
	account := new(Account)
	err := sqlscan.Get(
		ctx, store.rdb, account,
		`select * from accounts where account_id = $1`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (store *AccountSQLStore) ReadAccountByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	account := new(Account)
	err := sqlscan.Get(
		ctx, store.rdb, account,
		`select * from accounts where email = $1`,
		email,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (store *AccountSQLStore) ListAccounts(ctx context.Context) ([]*Account, error) {
	var accounts []*Account
	err := sqlscan.Select(
		ctx, store.rdb, &accounts,
		"select * from accounts order by name, account_id",
	)
	return accounts, err
}

func (store *AccountSQLStore) UpdateAccountProfile(
	ctx context.Context,
	accountID int64,
	name, avatarURL string,
) error {
	return execOne(
		ctx, store.rwdb,
		`update accounts
		set name = $1,
			avatar_url = $2
		where account_id = $3`,
		name, avatarURL, accountID,
	)
}

func (store *AccountSQLStore) UpdateAccountRole(
	ctx context.Context,
	accountID int64,
	role access.Role,
) error {
	return execOne(
		ctx, store.rwdb,
		`update accounts
		set role_id = $1
		where account_id = $2`,
		role, accountID,
	)
}

func (store *AccountSQLStore) UpdateAccountBanned(
	ctx context.Context,
	accountID int64,
	banned bool,
) error {
	return execOne(
		ctx, store.rwdb,
		`update accounts
		set banned = $1
		where account_id = $2`,
		banned, accountID,
	)
}

func (store *AccountSQLStore) CreateAuthSession(
	ctx context.Context,
	authSessionID string,
	accountID int64,
	expires *time.Time,
) (*AuthSession, error) {
	as := &AuthSession{
		AuthSessionID:        authSessionID,
		AuthSessionAccountID: accountID,
	}
	if expires != nil {
		as.AuthSessionExpires = sql.NullTime{Time: *expires, Valid: true}
	}
	_, err := store.rwdb.ExecContext(
		ctx,
		`
		insert into auth_sessions (
			auth_session_id,
			auth_session_account_id,
			auth_session_expires
		)
		values ($1, $2, $3)
		`,
		as.AuthSessionID,
		as.AuthSessionAccountID,
		as.AuthSessionExpires,
	)
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (store *AccountSQLStore) ReadAuthSession(
	ctx context.Context,
	authSessionID string,
) (*AuthSession, error) {
	as := new(AuthSession)
	err := sqlscan.Get(
		ctx, store.rdb, as,
		`select * from auth_sessions where auth_session_id = $1`,
		authSessionID,
	)
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (store *AccountSQLStore) DeleteAuthSession(ctx context.Context, authSessionID string) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions where auth_session_id = $1`,
		authSessionID,
	)
	return err
}

func (store *AccountSQLStore) DeleteAuthSessionsByAccountID(ctx context.Context, accountID int64) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions
		where auth_session_account_id = $1`,
		accountID,
	)
	return err
}

func (store *AccountSQLStore) DeleteExpiredAuthSessions(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	res, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions
		where auth_session_expires is not null
		and auth_session_expires < $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// execOne runs a single-row write and maps zero affected rows to
// sql.ErrNoRows.
func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
