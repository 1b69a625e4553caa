package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUUIDGenerator struct {
	mock.Mock
}

func (m *MockUUIDGenerator) GenerateUUID() string {
	args := m.Called()
	return args.String(0)
}

type failingScheduler struct {
	gocron.Scheduler
}

func (failingScheduler) NewJob(gocron.JobDefinition, gocron.Task, ...gocron.JobOption) (gocron.Job, error) {
	return nil, errors.New("scheduler stopped")
}

type checkoutFixture struct {
	shop     *testShop
	checkout *CheckoutService
	buyer    *store.Account
	product  *store.Product
}

func newCheckoutFixture(t *testing.T, delay time.Duration) *checkoutFixture {
	t.Helper()
	shop := newTestShop(t)
	scheduler := NewScheduler()
	scheduler.Start()
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	shop.register(t, "buyer@shop.test", "Buyer")
	buyer := shop.mustLogin(t, "buyer@shop.test")
	superAdmin := &store.Account{Email: testSuperAdminEmail, RoleID: access.SuperAdmin}
	p, err := shop.catalog.AddProduct(
		context.Background(), superAdmin,
		ProductParams{Name: "Pack", Price: 299, Category: "Energy"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return &checkoutFixture{
		shop:     shop,
		checkout: NewCheckoutService(shop.stores.orders, shop.stores.carts, scheduler, NewUUIDGen(), delay),
		buyer:    buyer,
		product:  p,
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("success - order is paid and cart cleared after the delay", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, 50*time.Millisecond)
		mockUUID := new(MockUUIDGenerator)
		mockUUID.On("GenerateUUID").Return("order-1")
		f.checkout.uuidGenerator = mockUUID
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)

		// act
		o, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})

		// assert
		assert.NoError(t, err)
		assert.Equal(t, "order-1", o.OrderID)
		assert.Equal(t, store.OrderProcessing, o.Status)
		assert.Equal(t, int64(598), o.Amount)
		assert.Eventually(t, func() bool {
			paid, err := f.checkout.GetOrder(ctx, f.buyer, o.OrderID)
			return err == nil && paid.Status == store.OrderPaid
		}, 5*time.Second, 20*time.Millisecond)
		cart, _ := f.shop.carts.GetCart(ctx, f.buyer)
		assert.Empty(t, cart.Lines)
		assert.Equal(t, 0, f.checkout.jobs.Len())
	})
	t.Run("success - cancel keeps cart and stops the payment", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		o, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "sbp"})
		assert.NoError(t, err)

		// act
		cancelled, err := f.checkout.CancelOrder(ctx, f.buyer, o.OrderID)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, store.OrderCancelled, cancelled.Status)
		assert.Equal(t, 0, f.checkout.jobs.Len())
		cart, _ := f.shop.carts.GetCart(ctx, f.buyer)
		assert.Len(t, cart.Lines, 1)

		_, err = f.checkout.CancelOrder(ctx, f.buyer, o.OrderID)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
	t.Run("failure - empty cart", func(t *testing.T) {
		f := newCheckoutFixture(t, time.Hour)

		o, err := f.checkout.Checkout(context.Background(), f.buyer, CheckoutParams{PaymentMethod: "card"})

		assert.Nil(t, o)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "cart", ve.Field)
	})
	t.Run("failure - unknown payment method", func(t *testing.T) {
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)

		_, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "cash"})

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "payment_method", ve.Field)
	})
	t.Run("failure - banned buyer", func(t *testing.T) {
		f := newCheckoutFixture(t, time.Hour)
		f.buyer.Banned = true

		_, err := f.checkout.Checkout(context.Background(), f.buyer, CheckoutParams{PaymentMethod: "card"})

		assert.ErrorIs(t, err, access.ErrBanned)
	})
	t.Run("failure - other accounts cannot see the order", func(t *testing.T) {
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		o, _ := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "paypal"})
		other := &store.Account{AccountID: f.buyer.AccountID + 1000, RoleID: access.RegularUser}

		_, err := f.checkout.GetOrder(ctx, other, o.OrderID)

		assert.Error(t, err)
	})
	t.Run("failure - super admin cannot cancel another buyer's order", func(t *testing.T) {
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		o, _ := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})
		superAdmin := &store.Account{
			AccountID: f.buyer.AccountID + 1000,
			Email:     testSuperAdminEmail,
			RoleID:    access.SuperAdmin,
		}

		_, err := f.checkout.CancelOrder(ctx, superAdmin, o.OrderID)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		still, _ := f.checkout.GetOrder(ctx, f.buyer, o.OrderID)
		assert.Equal(t, store.OrderProcessing, still.Status)
	})
	t.Run("failure - unscheduled order is cancelled", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		f.checkout.scheduler = failingScheduler{}
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)

		// act
		o, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})

		// assert
		assert.Nil(t, o)
		assert.Error(t, err)
		orders, _ := f.checkout.ListOrders(ctx, f.buyer)
		assert.Len(t, orders, 1)
		assert.Equal(t, store.OrderCancelled, orders[0].Status)
		_, err = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		assert.NoError(t, err)
	})
}

func TestCheckoutService_CartLock(t *testing.T) {
	t.Run("failure - cart and checkout are locked while payment is processing", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		o, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})
		assert.NoError(t, err)

		// act
		_, addErr := f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		_, removeErr := f.shop.carts.RemoveFromCart(ctx, f.buyer, f.product.ProductID)
		second, checkoutErr := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})

		// assert
		for _, err := range []error{addErr, removeErr, checkoutErr} {
			var ve *ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, "payment in progress", ve.Message)
			}
		}
		assert.Nil(t, second)
		orders, _ := f.checkout.ListOrders(ctx, f.buyer)
		assert.Len(t, orders, 1)
		cart, _ := f.shop.carts.GetCart(ctx, f.buyer)
		assert.Equal(t, o.Amount, cart.Total)

		_, err = f.checkout.CancelOrder(ctx, f.buyer, o.OrderID)
		assert.NoError(t, err)
		_, err = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		assert.NoError(t, err)
	})
	t.Run("success - buyer is charged once for the units in the order", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, 200*time.Millisecond)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		o, err := f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})
		assert.NoError(t, err)
		_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
		_, _ = f.checkout.Checkout(ctx, f.buyer, CheckoutParams{PaymentMethod: "card"})

		// act
		assert.Eventually(t, func() bool {
			paid, err := f.checkout.GetOrder(ctx, f.buyer, o.OrderID)
			return err == nil && paid.Status == store.OrderPaid
		}, 5*time.Second, 20*time.Millisecond)
		cart, err := f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)

		// assert
		assert.NoError(t, err)
		orders, _ := f.checkout.ListOrders(ctx, f.buyer)
		var paidTotal int64
		for _, order := range orders {
			if order.Status == store.OrderPaid {
				paidTotal += order.Amount
			}
		}
		assert.Len(t, orders, 1)
		assert.Equal(t, f.product.Price, paidTotal)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, int64(1), cart.Lines[0].Quantity)
	})
}

func TestCheckoutService_schedulePayment(t *testing.T) {
	t.Run("success - delay shorter than the schedule floor starts immediately", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		f := newCheckoutFixture(t, time.Hour)
		_, err := f.shop.stores.orders.CreateOrder(ctx, "short-delay", f.buyer.AccountID, 299, "card")
		assert.NoError(t, err)

		// act
		err = f.checkout.schedulePayment("short-delay", time.Nanosecond)

		// assert
		assert.NoError(t, err)
		assert.Eventually(t, func() bool {
			o, err := f.shop.stores.orders.ReadOrderByID(ctx, "short-delay")
			return err == nil && o.Status == store.OrderPaid
		}, 5*time.Second, 20*time.Millisecond)
	})
}

func TestCheckoutService_ResumePendingPayments(t *testing.T) {
	// arrange
	ctx := context.Background()
	f := newCheckoutFixture(t, 0)
	_, _ = f.shop.carts.AddToCart(ctx, f.buyer, f.product.ProductID)
	_, err := f.shop.stores.orders.CreateOrder(ctx, "resumed-order", f.buyer.AccountID, 299, "card")
	assert.NoError(t, err)

	// act
	err = f.checkout.ResumePendingPayments(ctx)

	// assert
	assert.NoError(t, err)
	assert.Eventually(t, func() bool {
		o, err := f.shop.stores.orders.ReadOrderByID(ctx, "resumed-order")
		return err == nil && o.Status == store.OrderPaid
	}, 5*time.Second, 20*time.Millisecond)
}
