package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// Session is the cashier's till session held by the backend. Orders cannot be
// created without an open one.
type Session struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"userId"`
	TerminalID  string           `json:"terminalId"`
	OpeningCash decimal.Decimal  `json:"openingCash"`
	ClosingCash *decimal.Decimal `json:"closingCash,omitempty"`
	Status      SessionStatus    `json:"status"`
	OpenedAt    time.Time        `json:"openedAt"`
	ClosedAt    *time.Time       `json:"closedAt,omitempty"`
	TotalSales  *decimal.Decimal `json:"totalSales,omitempty"`
}
