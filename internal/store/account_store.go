package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/haatos/simple-shop/internal/access"
)

type Account struct {
	AccountID    int64       `json:"account_id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	AvatarURL    string      `json:"avatar_url"`
	PasswordHash string      `json:"-"`
	RoleID       access.Role `json:"role"`
	Banned       bool        `json:"banned"`
	CreatedOn    time.Time   `json:"created_on"`
}

type AuthSession struct {
	AuthSessionID        string
	AuthSessionAccountID int64
	AuthSessionExpires   sql.NullTime
}

// Expired reports whether the session is past its expiry. Sessions without
// an expiry never expire.
func (as *AuthSession) Expired(now time.Time) bool {
	return as.AuthSessionExpires.Valid && as.AuthSessionExpires.Time.Before(now)
}

type AccountStore interface {
	CreateAccount(context.Context, string, string, string, access.Role) (*Account, error)
	ReadAccountByID(context.Context, int64) (*Account, error)
	ReadAccountByEmail(context.Context, string) (*Account, error)
	ListAccounts(context.Context) ([]*Account, error)
	UpdateAccountProfile(context.Context, int64, string, string) error
	UpdateAccountRole(context.Context, int64, access.Role) error
	UpdateAccountBanned(context.Context, int64, bool) error

	CreateAuthSession(context.Context, string, int64, *time.Time) (*AuthSession, error)
	ReadAuthSession(context.Context, string) (*AuthSession, error)
	DeleteAuthSession(context.Context, string) error
	DeleteAuthSessionsByAccountID(context.Context, int64) error
	DeleteExpiredAuthSessions(context.Context, time.Time) (int64, error)
}
