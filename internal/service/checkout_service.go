package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
)

type OrderStore interface {
	CreateOrder(context.Context, string, int64, int64, string) (*store.Order, error)
	ReadOrderByID(context.Context, string) (*store.Order, error)
	ListOrdersByAccountID(context.Context, int64) ([]*store.Order, error)
	ListProcessingOrders(context.Context) ([]*store.Order, error)
	HasProcessingOrder(context.Context, int64) (bool, error)
	CompleteOrder(context.Context, string, time.Time) error
	CancelOrder(context.Context, string) error
}

type CartLister interface {
	ListCartLines(context.Context, int64) ([]*store.CartLine, error)
}

type CheckoutParams struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card sbp paypal"`
}

type CheckoutService struct {
	orderStore    OrderStore
	cartLister    CartLister
	scheduler     gocron.Scheduler
	uuidGenerator UUIDGenerator
	paymentDelay  time.Duration
	jobs          *JobMap[string]
}

// NewCheckoutService returns a CheckoutService that settles each order
// paymentDelay after checkout.
func NewCheckoutService(
	orders OrderStore,
	cl CartLister,
	scheduler gocron.Scheduler,
	uuidGenerator UUIDGenerator,
	paymentDelay time.Duration,
) *CheckoutService {
	return &CheckoutService{
		orderStore:    orders,
		cartLister:    cl,
		scheduler:     scheduler,
		uuidGenerator: uuidGenerator,
		paymentDelay:  paymentDelay,
		jobs:          NewJobMap[string](),
	}
}

// minScheduleDelay is the shortest delay scheduled for a point in time.
// Shorter delays start immediately so the start time is never in the past.
const minScheduleDelay = 10 * time.Millisecond

// Checkout places an order for the actor's cart. The order stays processing
// until the payment job marks it paid and empties the cart. Only one order per
// account can be processing at a time.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	actor *store.Account,
	p CheckoutParams,
) (*store.Order, error) {
	if err := access.Authorize(SubjectOf(actor), access.Checkout); err != nil {
		return nil, err
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := ensureCartUnlocked(ctx, s.orderStore, actor.AccountID); err != nil {
		return nil, err
	}

	lines, err := s.cartLister.ListCartLines(ctx, actor.AccountID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, NewValidationError("cart", "cart is empty")
	}
	var amount int64
	for _, l := range lines {
		amount += l.Subtotal()
	}

	o, err := s.orderStore.CreateOrder(
		ctx,
		s.uuidGenerator.GenerateUUID(),
		actor.AccountID,
		amount,
		p.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}
	if err := s.schedulePayment(o.OrderID, s.paymentDelay); err != nil {
		if cancelErr := s.orderStore.CancelOrder(ctx, o.OrderID); cancelErr != nil {
			log.Printf("err cancelling unscheduled order %s: %+v\n", o.OrderID, cancelErr)
		}
		return nil, err
	}
	return o, nil
}

func (s *CheckoutService) schedulePayment(orderID string, delay time.Duration) error {
	start := gocron.OneTimeJobStartImmediately()
	if delay >= minScheduleDelay {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}
	job, err := s.scheduler.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(func() {
			s.CompletePayment(context.Background(), orderID)
		}),
		gocron.WithName(orderID),
	)
	if err != nil {
		return err
	}
	s.jobs.Add(orderID, job.ID())
	return nil
}

// CompletePayment marks a processing order paid. Orders cancelled in the
// meantime are left alone.
func (s *CheckoutService) CompletePayment(ctx context.Context, orderID string) {
	s.jobs.Take(orderID)
	err := s.orderStore.CompleteOrder(ctx, orderID, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		log.Printf("order %s is no longer processing\n", orderID)
		return
	}
	if err != nil {
		log.Printf("err completing order %s: %+v\n", orderID, err)
	}
}

// GetOrder returns one of the actor's own orders. Orders of other accounts
// are reported as missing.
func (s *CheckoutService) GetOrder(
	ctx context.Context,
	actor *store.Account,
	orderID string,
) (*store.Order, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}
	o, err := s.orderStore.ReadOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.AccountID != actor.AccountID {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, actor *store.Account) ([]*store.Order, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}
	return s.orderStore.ListOrdersByAccountID(ctx, actor.AccountID)
}

// CancelOrder stops a processing order before its payment job runs. The cart
// is left untouched.
func (s *CheckoutService) CancelOrder(
	ctx context.Context,
	actor *store.Account,
	orderID string,
) (*store.Order, error) {
	o, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderStore.CancelOrder(ctx, o.OrderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewValidationError("order_id", "order is no longer processing")
		}
		return nil, err
	}
	if jobID, ok := s.jobs.Take(o.OrderID); ok {
		if err := s.scheduler.RemoveJob(jobID); err != nil {
			log.Printf("err removing payment job for order %s: %+v\n", o.OrderID, err)
		}
	}
	return s.orderStore.ReadOrderByID(ctx, o.OrderID)
}

// ResumePendingPayments reschedules orders left processing by a previous run.
func (s *CheckoutService) ResumePendingPayments(ctx context.Context) error {
	orders, err := s.orderStore.ListProcessingOrders(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	now := time.Now().UTC()
	for _, o := range orders {
		delay := max(o.CreatedOn.Add(s.paymentDelay).Sub(now), 0)
		if err := s.schedulePayment(o.OrderID, delay); err != nil {
			return err
		}
	}
	return nil
}
