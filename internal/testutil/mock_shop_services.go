package testutil

import (
	"context"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]*store.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, productID int64) (*store.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Product), args.Error(1)
}

func (m *MockCatalogService) AddProduct(
	ctx context.Context,
	actor *store.Account,
	p service.ProductParams,
) (*store.Product, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) error {
	args := m.Called(ctx, actor, productID)
	return args.Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, actor *store.Account) (*service.Cart, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) (*service.Cart, error) {
	args := m.Called(ctx, actor, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Cart), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) (*service.Cart, error) {
	args := m.Called(ctx, actor, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Cart), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(
	ctx context.Context,
	actor *store.Account,
	p service.CheckoutParams,
) (*store.Order, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockCheckoutService) GetOrder(
	ctx context.Context,
	actor *store.Account,
	orderID string,
) (*store.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockCheckoutService) ListOrders(ctx context.Context, actor *store.Account) ([]*store.Order, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Order), args.Error(1)
}

func (m *MockCheckoutService) CancelOrder(
	ctx context.Context,
	actor *store.Account,
	orderID string,
) (*store.Order, error) {
	args := m.Called(ctx, actor, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

type MockThemeService struct {
	mock.Mock
}

func (m *MockThemeService) GetTheme(ctx context.Context) (*service.Theme, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Theme), args.Error(1)
}

func (m *MockThemeService) UpdateTheme(
	ctx context.Context,
	actor *store.Account,
	t service.Theme,
) (*service.Theme, error) {
	args := m.Called(ctx, actor, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Theme), args.Error(1)
}

func (m *MockThemeService) ResetTheme(ctx context.Context, actor *store.Account) (*service.Theme, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Theme), args.Error(1)
}

func (m *MockThemeService) Presets() []service.ThemePreset {
	args := m.Called()
	return args.Get(0).([]service.ThemePreset)
}

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Support(
	ctx context.Context,
	actor *store.Account,
	p service.SupportParams,
) (*service.SupportReply, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SupportReply), args.Error(1)
}

func (m *MockAssistantService) SiteManager(
	ctx context.Context,
	actor *store.Account,
	p service.SiteManagerParams,
) (*service.SiteManagerReply, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SiteManagerReply), args.Error(1)
}

func (m *MockAssistantService) ChatHistory(
	ctx context.Context,
	actor *store.Account,
	chatType store.ChatType,
) ([]*store.ChatMessage, error) {
	args := m.Called(ctx, actor, chatType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.ChatMessage), args.Error(1)
}
