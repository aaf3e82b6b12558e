package services

import (
	"errors"

	"github.com/yeremiapane/restaurant-pos/backend"
)

var (
	ErrSubmitInFlight    = errors.New("order submission already in progress")
	ErrNoActiveSession   = backend.ErrNoActiveSession
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusNotAllowed  = errors.New("status change not allowed")
	ErrNoPendingItem     = errors.New("no customization in progress")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrOrderCancelled    = errors.New("order has been cancelled")
)

// Shown when the backend has no open cashier session; the dashboard moves to
// the session screen after the delay.
const (
	SessionMessage         = "No active session found. Please start a session first."
	SessionRedirect        = "/dashboard/cashier/sessions"
	SessionRedirectAfterMs = 2000
)
