package seating

import "github.com/yeremiapane/restaurant-pos/models"

// TableState is one tile of the table board.
type TableState struct {
	models.Table
	Status      models.TableStatus `json:"status"`
	OrderID     uint               `json:"orderId,omitempty"`
	OrderStatus models.OrderStatus `json:"orderStatus,omitempty"`
	Booking     *models.Booking    `json:"booking,omitempty"`
}

// Statuses derives the board. An active order wins over a reservation.
func Statuses(f Floor) []TableState {
	out := make([]TableState, 0, len(f.Tables))
	for _, t := range f.Tables {
		st := TableState{Table: t, Status: models.TableAvailable}
		if o, ok := f.activeOrder(t.Number); ok {
			st.Status = models.TableOccupied
			st.OrderID = o.ID
			st.OrderStatus = o.Status
		} else if b, ok := f.reservation(t); ok {
			st.Status = models.TableReserved
			booking := b
			st.Booking = &booking
		}
		out = append(out, st)
	}
	return out
}

// AvailableNumbers lists the tables a dine-in order could use right now.
func AvailableNumbers(f Floor) []string {
	var out []string
	for _, st := range Statuses(f) {
		if st.Status == models.TableAvailable {
			out = append(out, st.Number)
		}
	}
	return out
}
