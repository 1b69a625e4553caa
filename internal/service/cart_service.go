package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
)

type CartStore interface {
	AddCartLine(context.Context, int64, int64) error
	ListCartLines(context.Context, int64) ([]*store.CartLine, error)
	DeleteCartLine(context.Context, int64, int64) error
}

type PendingOrderChecker interface {
	HasProcessingOrder(context.Context, int64) (bool, error)
}

// ensureCartUnlocked rejects cart changes and new checkouts while an order
// priced on the cart is waiting for its payment.
func ensureCartUnlocked(ctx context.Context, orders PendingOrderChecker, accountID int64) error {
	pending, err := orders.HasProcessingOrder(ctx, accountID)
	if err != nil {
		return err
	}
	if pending {
		return NewValidationError("cart", "payment in progress")
	}
	return nil
}

type ProductReader interface {
	ReadProductByID(context.Context, int64) (*store.Product, error)
}

type Cart struct {
	Lines []*store.CartLine `json:"lines"`
	Total int64             `json:"total"`
}

func newCart(lines []*store.CartLine) *Cart {
	if lines == nil {
		lines = make([]*store.CartLine, 0)
	}
	c := &Cart{Lines: lines}
	for _, l := range lines {
		c.Total += l.Subtotal()
	}
	return c
}

type CartService struct {
	cartStore     CartStore
	productReader ProductReader
	orders        PendingOrderChecker
}

func NewCartService(cs CartStore, pr ProductReader, orders PendingOrderChecker) *CartService {
	return &CartService{cartStore: cs, productReader: pr, orders: orders}
}

func (s *CartService) GetCart(ctx context.Context, actor *store.Account) (*Cart, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}
	lines, err := s.cartStore.ListCartLines(ctx, actor.AccountID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return newCart(lines), nil
}

// AddToCart adds one unit of an in-stock product to the actor's cart. The cart
// is locked while a checkout is processing.
func (s *CartService) AddToCart(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) (*Cart, error) {
	if err := access.Authorize(SubjectOf(actor), access.AddToCart); err != nil {
		return nil, err
	}
	if err := ensureCartUnlocked(ctx, s.orders, actor.AccountID); err != nil {
		return nil, err
	}
	p, err := s.productReader.ReadProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock {
		return nil, NewValidationError("product_id", "product is out of stock")
	}
	if err := s.cartStore.AddCartLine(ctx, actor.AccountID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, actor)
}

func (s *CartService) RemoveFromCart(
	ctx context.Context,
	actor *store.Account,
	productID int64,
) (*Cart, error) {
	if err := access.Authorize(SubjectOf(actor), access.AddToCart); err != nil {
		return nil, err
	}
	if err := ensureCartUnlocked(ctx, s.orders, actor.AccountID); err != nil {
		return nil, err
	}
	if err := s.cartStore.DeleteCartLine(ctx, actor.AccountID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, actor)
}
