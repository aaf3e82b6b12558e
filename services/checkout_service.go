package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type OrderGetter interface {
	GetOrder(ctx context.Context, id uint) (models.Order, error)
}

// CheckoutService opens checkout flows for orders and keeps the cashier
// dashboards in sync with them.
type CheckoutService struct {
	orders   OrderGetter
	settings *SettingsService
	registry *checkout.Registry
	hub      *kds.KDSHub
	monitor  *CheckoutMonitor
}

func NewCheckoutService(orders OrderGetter, settings *SettingsService, registry *checkout.Registry, hub *kds.KDSHub, monitor *CheckoutMonitor) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		settings: settings,
		registry: registry,
		hub:      hub,
		monitor:  monitor,
	}
}

// Open starts the order's checkout, or returns the one already running.
func (s *CheckoutService) Open(ctx context.Context, orderID uint) (checkout.View, error) {
	flow, err := s.flow(ctx, orderID)
	if err != nil {
		return checkout.View{}, err
	}
	return s.publish(flow), nil
}

func (s *CheckoutService) flow(ctx context.Context, orderID uint) (*checkout.Orchestrator, error) {
	if flow, ok := s.registry.Get(orderID); ok {
		return flow, nil
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	switch order.Status {
	case models.OrderStatusPaid:
		return nil, checkout.ErrAlreadyPaid
	case models.OrderStatusCancelled:
		return nil, ErrOrderCancelled
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Checkout opened for order %d", orderID)
	return s.registry.Open(order, settings), nil
}

func (s *CheckoutService) publish(flow *checkout.Orchestrator) checkout.View {
	v := flow.View()
	s.hub.BroadcastCheckout(v)
	return v
}

// View returns the running checkout without starting one.
func (s *CheckoutService) View(orderID uint) (checkout.View, bool) {
	flow, ok := s.registry.Get(orderID)
	if !ok {
		return checkout.View{}, false
	}
	return flow.View(), true
}

func (s *CheckoutService) SetDiscount(ctx context.Context, orderID uint, amount decimal.Decimal) (checkout.View, error) {
	flow, err := s.flow(ctx, orderID)
	if err != nil {
		return checkout.View{}, err
	}
	if err := flow.SetDiscount(amount); err != nil {
		return flow.View(), err
	}
	return s.publish(flow), nil
}

func (s *CheckoutService) GenerateBill(ctx context.Context, orderID uint) (checkout.View, error) {
	flow, err := s.flow(ctx, orderID)
	if err != nil {
		return checkout.View{}, err
	}
	if err := s.generate(ctx, flow); err != nil {
		return s.publish(flow), err
	}
	return s.publish(flow), nil
}

func (s *CheckoutService) generate(ctx context.Context, flow *checkout.Orchestrator) error {
	start := time.Now()
	_, err := flow.GenerateBill(ctx)
	if err == nil || isBackendFailure(err) {
		s.monitor.RecordBill(time.Since(start), err)
	}
	return err
}

func (s *CheckoutService) Pay(ctx context.Context, orderID uint, method models.PaymentMethod) (checkout.View, error) {
	flow, err := s.flow(ctx, orderID)
	if err != nil {
		return checkout.View{}, err
	}
	if err := s.pay(ctx, flow, method); err != nil {
		return s.publish(flow), err
	}
	return s.publish(flow), nil
}

func (s *CheckoutService) pay(ctx context.Context, flow *checkout.Orchestrator, method models.PaymentMethod) error {
	start := time.Now()
	_, err := flow.Pay(ctx, method)
	if err == nil || isBackendFailure(err) {
		s.monitor.RecordPayment(time.Since(start), err)
	}
	return err
}

// Checkout generates the bill if needed and pays it in one call.
func (s *CheckoutService) Checkout(ctx context.Context, orderID uint, method models.PaymentMethod) (checkout.View, error) {
	if !method.Valid() {
		return checkout.View{}, checkout.ErrInvalidMethod
	}
	flow, err := s.flow(ctx, orderID)
	if err != nil {
		return checkout.View{}, err
	}
	if err := s.generate(ctx, flow); err != nil {
		return s.publish(flow), err
	}
	if err := s.pay(ctx, flow, method); err != nil {
		return s.publish(flow), err
	}
	return s.publish(flow), nil
}

// Close abandons the order's checkout.
func (s *CheckoutService) Close(orderID uint) {
	flow, ok := s.registry.Get(orderID)
	if !ok {
		return
	}
	flow.Close()
	s.hub.BroadcastCheckout(flow.View())
	utils.InfoLogger.Printf("Checkout closed for order %d", orderID)
}

func (s *CheckoutService) Metrics() CheckoutMetrics {
	return s.monitor.GetMetrics()
}

// isBackendFailure reports whether err came back from the backend rather than
// from a local guard.
func isBackendFailure(err error) bool {
	for _, local := range []error{
		checkout.ErrBusy,
		checkout.ErrNoBill,
		checkout.ErrAlreadyPaid,
		checkout.ErrClosed,
		checkout.ErrInvalidMethod,
	} {
		if errors.Is(err, local) {
			return false
		}
	}
	return true
}
