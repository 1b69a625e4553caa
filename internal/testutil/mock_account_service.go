package testutil

import (
	"context"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(
	ctx context.Context,
	p service.RegisterParams,
) (*store.Account, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}

func (m *MockAccountService) Authenticate(
	ctx context.Context,
	p service.LoginParams,
) (*store.Account, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}

func (m *MockAccountService) CreateAuthSession(
	ctx context.Context,
	accountID int64,
) (*store.AuthSession, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AuthSession), args.Error(1)
}

func (m *MockAccountService) GetAccountBySessionID(
	ctx context.Context,
	sessionID string,
) (*store.Account, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}

func (m *MockAccountService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAccountService) SignOut(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountService) UpdateProfile(
	ctx context.Context,
	actor *store.Account,
	p service.ProfileParams,
) (*store.Account, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}

func (m *MockAccountService) ClaimJuniorAdmin(
	ctx context.Context,
	actor *store.Account,
	key string,
) (*store.Account, error) {
	args := m.Called(ctx, actor, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(
	ctx context.Context,
	actor *store.Account,
	query string,
) ([]*store.Account, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Account), args.Error(1)
}

func (m *MockAccountService) ApplyAccountAction(
	ctx context.Context,
	actor *store.Account,
	targetID int64,
	action access.AccountAction,
) (*store.Account, error) {
	args := m.Called(ctx, actor, targetID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Account), args.Error(1)
}
