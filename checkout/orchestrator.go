package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var (
	ErrBusy             = errors.New("checkout is already in progress for this order")
	ErrNoBill           = errors.New("bill has not been generated")
	ErrAlreadyPaid      = errors.New("order is already paid")
	ErrClosed           = errors.New("checkout has been closed")
	ErrInvalidMethod    = errors.New("payment method must be Cash, Card or Mobile")
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrBillLocked       = errors.New("discount cannot change once the bill is generated")
)

// Billing is the backend's two settlement calls.
type Billing interface {
	GenerateBill(ctx context.Context, req models.GenerateBillRequest) (models.Bill, error)
	ProcessPayment(ctx context.Context, req models.ProcessPaymentRequest) (models.Transaction, error)
}

// Slip is everything printed on the receipt.
type Slip struct {
	RestaurantName string
	Order          models.Order
	Bill           models.Bill
	Totals         Totals
	Method         models.PaymentMethod
	Reference      string
	PaidAt         time.Time
}

type Printer interface {
	Print(ctx context.Context, slip Slip) error
}

type Options struct {
	Printer    Printer
	PrintDelay time.Duration
	// OnClose runs once the flow has finished or been abandoned.
	OnClose func(orderID uint)
	Now     func() time.Time
}

// Orchestrator drives one order through bill generation and payment. Calls
// that arrive while a backend request is in flight fail with ErrBusy.
type Orchestrator struct {
	billing Billing
	opts    Options

	mu       sync.Mutex
	order    models.Order
	settings models.Settings
	discount *decimal.Decimal
	state    State
	history  []State
	bill     *models.Bill
	tx       *models.Transaction
	lastErr  error
	closed   bool
	done     chan struct{}
	doneOnce sync.Once
}

func New(billing Billing, order models.Order, settings models.Settings, opts Options) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{
		billing:  billing,
		opts:     opts,
		order:    order,
		settings: settings,
		state:    StateIdle,
		history:  []State{StateIdle},
		done:     make(chan struct{}),
	}
}

// View is a read-only copy of the flow for the dashboard.
type View struct {
	OrderID     uint                `json:"orderId"`
	OrderNumber string              `json:"orderNumber"`
	State       State               `json:"state"`
	Totals      Totals              `json:"totals"`
	Bill        *models.Bill        `json:"bill,omitempty"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Error       string              `json:"error,omitempty"`
	Closed      bool                `json:"closed"`
}

func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := View{
		OrderID:     o.order.ID,
		OrderNumber: o.order.OrderNumber,
		State:       o.state,
		Totals:      o.quoteLocked(),
		Bill:        o.bill,
		Transaction: o.tx,
		Closed:      o.closed,
	}
	if o.lastErr != nil {
		v.Error = o.lastErr.Error()
	}
	return v
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// History lists every state the flow has passed through.
func (o *Orchestrator) History() []State {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]State, len(o.history))
	copy(out, o.history)
	return out
}

// Done is closed after the receipt has printed or the flow was abandoned.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

func (o *Orchestrator) Quote() Totals {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.quoteLocked()
}

func (o *Orchestrator) quoteLocked() Totals {
	return Quote(OrderSubtotal(o.order), o.settings, o.discount)
}

func (o *Orchestrator) moveLocked(to State) {
	if err := canTransition(o.state, to); err != nil {
		// Every caller checks the state first; reaching this is a bug.
		panic(err)
	}
	o.state = to
	o.history = append(o.history, to)
}

// SetDiscount overrides the default discount amount. Only allowed before the
// bill exists, so the bill always matches what the cashier approved.
func (o *Orchestrator) SetDiscount(amount decimal.Decimal) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.closed:
		return ErrClosed
	case o.state.Busy():
		return ErrBusy
	case o.bill != nil:
		return ErrBillLocked
	case amount.IsNegative():
		return ErrNegativeDiscount
	}
	d := amount
	o.discount = &d
	return nil
}

// UpdateOrder swaps in a fresher copy of the order, e.g. after a realtime
// status update. The snapshot is frozen once a bill has been generated.
func (o *Orchestrator) UpdateOrder(order models.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if order.ID != o.order.ID || o.bill != nil || o.state.Busy() {
		return
	}
	o.order = order
}

// UpdateSettings applies new tax and discount rates while no bill exists.
func (o *Orchestrator) UpdateSettings(settings models.Settings) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.bill != nil || o.state.Busy() {
		return
	}
	o.settings = settings
}

// GenerateBill asks the backend for a bill carrying the displayed tax and
// discount amounts. A bill kept from an earlier attempt is returned as is.
func (o *Orchestrator) GenerateBill(ctx context.Context) (models.Bill, error) {
	o.mu.Lock()
	switch {
	case o.closed:
		o.mu.Unlock()
		return models.Bill{}, ErrClosed
	case o.state.Busy():
		o.mu.Unlock()
		return models.Bill{}, ErrBusy
	case o.state == StatePaymentSucceeded:
		o.mu.Unlock()
		return models.Bill{}, ErrAlreadyPaid
	case o.bill != nil:
		bill := *o.bill
		o.mu.Unlock()
		return bill, nil
	}

	totals := o.quoteLocked()
	req := models.GenerateBillRequest{
		OrderID:  o.order.ID,
		Tax:      totals.Tax,
		Discount: totals.Discount,
	}
	o.lastErr = nil
	o.moveLocked(StateBillGenerating)
	o.mu.Unlock()

	bill, err := o.billing.GenerateBill(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.lastErr = fmt.Errorf("generate bill: %w", err)
		o.moveLocked(StatePaymentFailed)
		o.moveLocked(StateIdle)
		utils.ErrorLogger.Errorf("Bill generation failed for order %d: %v", req.OrderID, err)
		return models.Bill{}, o.lastErr
	}

	o.bill = &bill
	o.moveLocked(StateBillReady)
	utils.InfoLogger.Printf("Bill %s generated for order %d", bill.InvoiceNumber, req.OrderID)
	return bill, nil
}

// Pay settles the held bill. For Card and Mobile a fresh reference is
// generated on every attempt. On success the receipt prints after the
// configured delay and the flow closes.
func (o *Orchestrator) Pay(ctx context.Context, method models.PaymentMethod) (models.Transaction, error) {
	if !method.Valid() {
		return models.Transaction{}, ErrInvalidMethod
	}

	o.mu.Lock()
	switch {
	case o.closed:
		o.mu.Unlock()
		return models.Transaction{}, ErrClosed
	case o.state.Busy():
		o.mu.Unlock()
		return models.Transaction{}, ErrBusy
	case o.state == StatePaymentSucceeded:
		o.mu.Unlock()
		return models.Transaction{}, ErrAlreadyPaid
	case o.bill == nil:
		o.mu.Unlock()
		return models.Transaction{}, ErrNoBill
	}

	totals := o.quoteLocked()
	bill := *o.bill
	req := models.ProcessPaymentRequest{
		BillID: bill.ID,
		Amount: totals.GrandTotal,
		Method: method,
	}
	if method.NeedsReference() {
		req.Reference = o.reference(method)
	}
	o.lastErr = nil
	o.moveLocked(StatePaymentProcessing)
	o.mu.Unlock()

	tx, err := o.billing.ProcessPayment(ctx, req)

	o.mu.Lock()
	if err != nil {
		o.lastErr = fmt.Errorf("process payment: %w", err)
		failure := o.lastErr
		o.moveLocked(StatePaymentFailed)
		o.moveLocked(StateIdle)
		o.mu.Unlock()
		utils.ErrorLogger.Errorf("Payment failed for bill %d: %v", bill.ID, err)
		return models.Transaction{}, failure
	}

	o.tx = &tx
	o.moveLocked(StatePaymentSucceeded)
	slip := Slip{
		RestaurantName: o.settings.RestaurantName,
		Order:          o.order,
		Bill:           bill,
		Totals:         totals,
		Method:         method,
		Reference:      req.Reference,
		PaidAt:         o.opts.Now(),
	}
	o.mu.Unlock()

	utils.InfoLogger.Printf("Payment %s %s recorded for bill %d", method, totals.GrandTotal.StringFixed(2), bill.ID)
	o.schedulePrint(slip)
	return tx, nil
}

// Checkout runs both phases, reusing a retained bill.
func (o *Orchestrator) Checkout(ctx context.Context, method models.PaymentMethod) (models.Transaction, error) {
	if !method.Valid() {
		return models.Transaction{}, ErrInvalidMethod
	}
	if _, err := o.GenerateBill(ctx); err != nil {
		return models.Transaction{}, err
	}
	return o.Pay(ctx, method)
}

// Close abandons the flow. A generated bill stays with the backend.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed || o.state == StatePaymentSucceeded {
		o.mu.Unlock()
		return
	}
	o.closed = true
	id := o.order.ID
	o.mu.Unlock()
	o.finish(id)
}

func (o *Orchestrator) reference(method models.PaymentMethod) string {
	return fmt.Sprintf("%s-%d-%s", strings.ToUpper(string(method)), o.opts.Now().UnixNano(), uuid.NewString()[:8])
}

func (o *Orchestrator) schedulePrint(slip Slip) {
	time.AfterFunc(o.opts.PrintDelay, func() {
		if o.opts.Printer != nil {
			if err := o.opts.Printer.Print(context.Background(), slip); err != nil {
				utils.ErrorLogger.Errorf("Failed to print receipt for order %d: %v", slip.Order.ID, err)
			}
		}
		o.mu.Lock()
		o.closed = true
		o.mu.Unlock()
		o.finish(slip.Order.ID)
	})
}

func (o *Orchestrator) finish(orderID uint) {
	o.doneOnce.Do(func() {
		close(o.done)
		if o.opts.OnClose != nil {
			o.opts.OnClose(orderID)
		}
	})
}
