package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/stretchr/testify/assert"
)

func TestOrderSQLStore(t *testing.T) {
	t.Run("success - order completes and clears cart", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		p := createTestProduct(t, "Monitor", 2599)
		_ = cartStore.AddCartLine(ctx, a.AccountID, p.ProductID)
		orderID := uuid.NewString()
		order, err := orderStore.CreateOrder(ctx, orderID, a.AccountID, 2599, "card")
		assert.NoError(t, err)
		assert.Equal(t, OrderProcessing, order.Status)

		// act
		err = orderStore.CompleteOrder(ctx, orderID, time.Now().UTC())

		// assert
		assert.NoError(t, err)
		completed, _ := orderStore.ReadOrderByID(ctx, orderID)
		assert.Equal(t, OrderPaid, completed.Status)
		assert.True(t, completed.CompletedOn.Valid)
		lines, _ := cartStore.ListCartLines(ctx, a.AccountID)
		assert.Empty(t, lines)
	})
	t.Run("success - cancelled order keeps cart", func(t *testing.T) {
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		p := createTestProduct(t, "Webcam", 899)
		_ = cartStore.AddCartLine(ctx, a.AccountID, p.ProductID)
		orderID := uuid.NewString()
		_, _ = orderStore.CreateOrder(ctx, orderID, a.AccountID, 899, "sbp")

		err := orderStore.CancelOrder(ctx, orderID)

		assert.NoError(t, err)
		cancelled, _ := orderStore.ReadOrderByID(ctx, orderID)
		assert.Equal(t, OrderCancelled, cancelled.Status)
		lines, _ := cartStore.ListCartLines(ctx, a.AccountID)
		assert.Len(t, lines, 1)

		err = orderStore.CompleteOrder(ctx, orderID, time.Now().UTC())
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
	t.Run("failure - paid order cannot be cancelled", func(t *testing.T) {
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		orderID := uuid.NewString()
		_, _ = orderStore.CreateOrder(ctx, orderID, a.AccountID, 100, "paypal")
		_ = orderStore.CompleteOrder(ctx, orderID, time.Now().UTC())

		err := orderStore.CancelOrder(ctx, orderID)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
	t.Run("success - processing orders are listed", func(t *testing.T) {
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		orderID := uuid.NewString()
		_, _ = orderStore.CreateOrder(ctx, orderID, a.AccountID, 100, "card")

		processing, err := orderStore.ListProcessingOrders(ctx)
		own, ownErr := orderStore.ListOrdersByAccountID(ctx, a.AccountID)

		assert.NoError(t, err)
		assert.NoError(t, ownErr)
		assert.Len(t, own, 1)
		var found bool
		for _, o := range processing {
			if o.OrderID == orderID {
				found = true
			}
		}
		assert.True(t, found)
	})
	t.Run("success - processing order is reported until it settles", func(t *testing.T) {
		ctx := context.Background()
		a := createTestAccount(t, access.RegularUser)
		orderID := uuid.NewString()

		before, err1 := orderStore.HasProcessingOrder(ctx, a.AccountID)
		_, _ = orderStore.CreateOrder(ctx, orderID, a.AccountID, 100, "card")
		during, err2 := orderStore.HasProcessingOrder(ctx, a.AccountID)
		_ = orderStore.CancelOrder(ctx, orderID)
		after, err3 := orderStore.HasProcessingOrder(ctx, a.AccountID)

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.NoError(t, err3)
		assert.False(t, before)
		assert.True(t, during)
		assert.False(t, after)
	})
}
