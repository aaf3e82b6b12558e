package checkout

import (
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Registry keeps the open checkout flow of each order.
type Registry struct {
	billing    Billing
	printer    Printer
	printDelay time.Duration

	mu    sync.Mutex
	flows map[uint]*Orchestrator
}

func NewRegistry(billing Billing, printer Printer, printDelay time.Duration) *Registry {
	return &Registry{
		billing:    billing,
		printer:    printer,
		printDelay: printDelay,
		flows:      map[uint]*Orchestrator{},
	}
}

// Open returns the order's running flow or starts a new one.
func (r *Registry) Open(order models.Order, settings models.Settings) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.flows[order.ID]; ok {
		o.UpdateOrder(order)
		return o
	}

	o := New(r.billing, order, settings, Options{
		Printer:    r.printer,
		PrintDelay: r.printDelay,
		OnClose:    r.forget,
	})
	r.flows[order.ID] = o
	return o
}

func (r *Registry) Get(orderID uint) (*Orchestrator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.flows[orderID]
	return o, ok
}

// Close abandons the order's flow, if any.
func (r *Registry) Close(orderID uint) {
	if o, ok := r.Get(orderID); ok {
		o.Close()
	}
}

// OrderChanged pushes a fresher order into its open flow.
func (r *Registry) OrderChanged(order models.Order) {
	if o, ok := r.Get(order.ID); ok {
		o.UpdateOrder(order)
	}
}

// SettingsChanged re-prices every flow that has no bill yet.
func (r *Registry) SettingsChanged(settings models.Settings) {
	r.mu.Lock()
	flows := make([]*Orchestrator, 0, len(r.flows))
	for _, o := range r.flows {
		flows = append(flows, o)
	}
	r.mu.Unlock()

	for _, o := range flows {
		o.UpdateSettings(settings)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}

func (r *Registry) forget(orderID uint) {
	r.mu.Lock()
	delete(r.flows, orderID)
	r.mu.Unlock()
}
