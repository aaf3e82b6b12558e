package models

import "time"

type Table struct {
	ID        uint      `json:"id"`
	Number    string    `json:"number"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingStatus string

const (
	BookingReserved  BookingStatus = "Reserved"
	BookingSeated    BookingStatus = "Seated"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

type BookingTable struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
}

type Booking struct {
	ID           uint          `json:"id"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	Guests       int           `json:"guests"`
	BookingTime  time.Time     `json:"bookingTime"`
	TableID      uint          `json:"tableId"`
	Status       BookingStatus `json:"status"`
	Table        *BookingTable `json:"table,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableStatus is the derived state shown on the cashier's table board.
type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
	TableReserved  TableStatus = "Reserved"
)
