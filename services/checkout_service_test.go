package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
)

type countingPrinter struct {
	printed chan checkout.Slip
}

func (p *countingPrinter) Print(ctx context.Context, slip checkout.Slip) error {
	p.printed <- slip
	return nil
}

func newCheckoutService(be *fakeBackend) (*CheckoutService, *checkout.Registry, *countingPrinter) {
	printer := &countingPrinter{printed: make(chan checkout.Slip, 4)}
	registry := checkout.NewRegistry(be, printer, 10*time.Millisecond)
	svc := NewCheckoutService(be, NewSettingsService(be), registry, kds.NewHub(), NewCheckoutMonitor(time.Minute))
	return svc, registry, printer
}

func servedOrder(id uint) models.Order {
	return models.Order{ID: id, OrderNumber: "ORD-1-abcdefgh", Status: models.OrderStatusServed, TotalAmount: dec("100")}
}

func TestCheckoutServiceCompletePayment(t *testing.T) {
	be := newFakeBackend()
	be.orders[42] = servedOrder(42)
	svc, registry, printer := newCheckoutService(be)

	view, err := svc.Open(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateIdle, view.State)
	assert.Equal(t, "95.00", view.Totals.GrandTotal.StringFixed(2))

	view, err = svc.Checkout(context.Background(), 42, models.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatePaymentSucceeded, view.State)
	require.NotNil(t, view.Transaction)
	assert.Contains(t, view.Transaction.Reference, "CARD-")

	select {
	case slip := <-printer.printed:
		assert.Equal(t, "Siam", slip.RestaurantName)
	case <-time.After(time.Second):
		t.Fatal("receipt was not printed")
	}
	assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)

	m := svc.Metrics()
	assert.Equal(t, int64(1), m.BillsGenerated)
	assert.Equal(t, int64(1), m.SuccessfulPayments)
}

func TestCheckoutServiceBillFailure(t *testing.T) {
	be := newFakeBackend()
	be.orders[42] = servedOrder(42)
	be.billErr = &backend.APIError{StatusCode: 500, Message: "bill failed"}
	svc, _, _ := newCheckoutService(be)

	view, err := svc.Checkout(context.Background(), 42, models.PaymentCash)
	require.Error(t, err)
	assert.Equal(t, checkout.StateIdle, view.State)
	assert.Contains(t, view.Error, "bill failed")
	assert.Zero(t, be.payments, "no payment without a bill")

	m := svc.Metrics()
	assert.Equal(t, int64(1), m.FailedBills)
	assert.Zero(t, m.TotalTransactions)
}

func TestCheckoutServiceRejectsSettledOrders(t *testing.T) {
	be := newFakeBackend()
	paid := servedOrder(1)
	paid.Status = models.OrderStatusPaid
	cancelled := servedOrder(2)
	cancelled.Status = models.OrderStatusCancelled
	be.orders[1] = paid
	be.orders[2] = cancelled
	svc, _, _ := newCheckoutService(be)

	_, err := svc.Open(context.Background(), 1)
	assert.ErrorIs(t, err, checkout.ErrAlreadyPaid)
	_, err = svc.Open(context.Background(), 2)
	assert.ErrorIs(t, err, ErrOrderCancelled)

	_, err = svc.Open(context.Background(), 3)
	var apiErr *backend.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestCheckoutServiceDiscountAndClose(t *testing.T) {
	be := newFakeBackend()
	be.orders[42] = servedOrder(42)
	svc, registry, _ := newCheckoutService(be)

	view, err := svc.SetDiscount(context.Background(), 42, dec("200"))
	require.NoError(t, err)
	assert.True(t, view.Totals.GrandTotal.IsZero())

	_, err = svc.GenerateBill(context.Background(), 42)
	require.NoError(t, err)
	_, err = svc.SetDiscount(context.Background(), 42, dec("5"))
	assert.ErrorIs(t, err, checkout.ErrBillLocked)

	svc.Close(42)
	_, ok := svc.View(42)
	assert.False(t, ok)
	assert.Zero(t, registry.Len())
}

func TestCheckoutServicePayWithoutBill(t *testing.T) {
	be := newFakeBackend()
	be.orders[42] = servedOrder(42)
	svc, _, _ := newCheckoutService(be)

	_, err := svc.Pay(context.Background(), 42, models.PaymentCash)
	assert.ErrorIs(t, err, checkout.ErrNoBill)
	assert.Zero(t, be.payments)
	assert.Zero(t, svc.Metrics().TotalTransactions, "local guards are not counted")
}

func TestCheckoutMonitorAverages(t *testing.T) {
	m := NewCheckoutMonitor(time.Minute)
	m.RecordBill(100*time.Millisecond, nil)
	m.RecordPayment(300*time.Millisecond, errors.New("declined"))

	got := m.GetMetrics()
	assert.Equal(t, int64(200), got.AvgResponseTime)
	assert.Equal(t, int64(1), got.FailedPayments)

	m.Start()
	m.Stop()
	m.Stop()
}
