package services

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

// StatusTransition is one allowed order status move and who may make it.
type StatusTransition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Roles []models.Role
}

var (
	kitchenRoles = []models.Role{models.RoleKitchenStaff, models.RoleAdmin}
	floorRoles   = []models.Role{models.RoleKitchenStaff, models.RoleWaiter, models.RoleCashier, models.RoleAdmin}
)

// statusTransitions is the kitchen flow New → InProgress → Ready → Served.
// Paid is only ever set by the backend when a bill is settled.
var statusTransitions = []StatusTransition{
	{From: models.OrderStatusNew, To: models.OrderStatusInProgress, Roles: kitchenRoles},
	{From: models.OrderStatusInProgress, To: models.OrderStatusReady, Roles: kitchenRoles},
	{From: models.OrderStatusReady, To: models.OrderStatusServed, Roles: floorRoles},
	{From: models.OrderStatusNew, To: models.OrderStatusCancelled, Roles: floorRoles},
	{From: models.OrderStatusInProgress, To: models.OrderStatusCancelled, Roles: floorRoles},
}

// NextStatuses lists where an order may go from status.
func NextStatuses(status models.OrderStatus) []models.OrderStatus {
	var next []models.OrderStatus
	for _, t := range statusTransitions {
		if t.From == status {
			next = append(next, t.To)
		}
	}
	return next
}

// CanTransition reports whether role may move an order from one status to another.
func CanTransition(from, to models.OrderStatus, role models.Role) error {
	for _, t := range statusTransitions {
		if t.From != from || t.To != to {
			continue
		}
		for _, r := range t.Roles {
			if r == role {
				return nil
			}
		}
		return fmt.Errorf("%w: %s cannot move an order from %s to %s", ErrStatusNotAllowed, role, from, to)
	}
	return fmt.Errorf("%w: %s -> %s (valid from %s: %s)", ErrInvalidTransition, from, to, from, describeNext(from))
}

func describeNext(status models.OrderStatus) string {
	next := NextStatuses(status)
	if len(next) == 0 {
		return "none"
	}
	parts := make([]string, len(next))
	for i, s := range next {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
