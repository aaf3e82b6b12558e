// Package seating gates dine-in orders against the floor: the table must
// exist, be free of active orders and not be held by a reservation.
package seating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrTableRequired    = errors.New("table number required")
	ErrUnknownTable     = errors.New("table does not exist")
	ErrTableOccupied    = errors.New("table occupied")
	ErrTableReserved    = errors.New("table reserved")
	ErrCustomerRequired = errors.New("customer name required")
)

// ValidationError carries the message shown to staff. errors.Is matches the
// sentinel for its kind.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalid(kind error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), kind: kind}
}

// Draft is the order being submitted, before any network call.
type Draft struct {
	Type         models.OrderType
	TableNumber  string
	CustomerName string
	Lines        int
}

// Floor is a snapshot of the backend's tables, orders and bookings.
type Floor struct {
	Tables   []models.Table
	Orders   []models.Order
	Bookings []models.Booking
}

// Validate runs the checks in order and stops at the first failure.
func Validate(d Draft, f Floor) error {
	if d.Lines == 0 {
		return invalid(ErrEmptyCart, "items", "Your cart is empty")
	}

	switch d.Type {
	case models.OrderTypeDineIn:
		return validateDineIn(d.TableNumber, f)
	case models.OrderTypeTakeaway:
		if strings.TrimSpace(d.CustomerName) == "" {
			return invalid(ErrCustomerRequired, "customerName", "Please enter a customer name for Takeaway orders.")
		}
		return nil
	default:
		return invalid(ErrInvalidOrderType, "type", "Order type must be DineIn or Takeaway, got %q", d.Type)
	}
}

func validateDineIn(number string, f Floor) error {
	if strings.TrimSpace(number) == "" {
		return invalid(ErrTableRequired, "tableNumber", "Please enter a table number")
	}

	table, ok := f.table(number)
	if !ok {
		return invalid(ErrUnknownTable, "tableNumber", "Table %q does not exist in the system.", number)
	}

	if _, busy := f.activeOrder(number); busy {
		return invalid(ErrTableOccupied, "tableNumber", "Table %q is currently occupied. Please select an empty table.", number)
	}

	if b, held := f.reservation(table); held {
		return invalid(ErrTableReserved, "tableNumber", "Table %q is reserved for %s. Please select another table.", number, b.CustomerName)
	}
	return nil
}

func (f Floor) table(number string) (models.Table, bool) {
	for _, t := range f.Tables {
		if t.Number == number {
			return t, true
		}
	}
	return models.Table{}, false
}

func (f Floor) activeOrder(number string) (models.Order, bool) {
	for _, o := range f.Orders {
		if o.TableNumber == number && !o.Status.Terminal() {
			return o, true
		}
	}
	return models.Order{}, false
}

// reservation matches on table id, or on the embedded table number when the
// backend sends the booking with its table expanded.
func (f Floor) reservation(t models.Table) (models.Booking, bool) {
	for _, b := range f.Bookings {
		if b.Status != models.BookingReserved {
			continue
		}
		if b.TableID == t.ID || (b.Table != nil && b.Table.Number == t.Number) {
			return b, true
		}
	}
	return models.Booking{}, false
}
