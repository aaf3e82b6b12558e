package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/cart"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/seating"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type OrderBackend interface {
	ListOrders(ctx context.Context, q backend.OrderQuery) (models.PaginatedOrders, error)
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
	GetOrder(ctx context.Context, id uint) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (models.Order, error)
}

// SubmitRequest is the order form next to the cart.
type SubmitRequest struct {
	Type          models.OrderType `json:"type"`
	TableNumber   string           `json:"tableNumber"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
}

type OrderService struct {
	backend OrderBackend
	carts   *cart.Store
	floor   *FloorService
	hub     *kds.KDSHub

	mu       sync.Mutex
	inFlight map[uint]bool
}

func NewOrderService(backend OrderBackend, carts *cart.Store, floor *FloorService, hub *kds.KDSHub) *OrderService {
	return &OrderService{
		backend:  backend,
		carts:    carts,
		floor:    floor,
		hub:      hub,
		inFlight: map[uint]bool{},
	}
}

func (s *OrderService) begin(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *OrderService) end(userID uint) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

// Submit validates the staff member's cart against the floor and sends it to
// the backend. The submitted lines leave the cart only when the backend
// accepts the order; anything added meanwhile stays.
func (s *OrderService) Submit(ctx context.Context, userID uint, req SubmitRequest) (models.Order, error) {
	if !s.begin(userID) {
		return models.Order{}, ErrSubmitInFlight
	}
	defer s.end(userID)

	c := s.carts.Get(userID)
	lines := c.Lines()
	draft := seating.Draft{
		Type:         req.Type,
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Lines:        len(lines),
	}

	var floor seating.Floor
	if draft.Lines > 0 && req.Type == models.OrderTypeDineIn && strings.TrimSpace(req.TableNumber) != "" {
		f, err := s.floor.Snapshot(ctx)
		if err != nil {
			return models.Order{}, err
		}
		floor = f
	}
	if err := seating.Validate(draft, floor); err != nil {
		return models.Order{}, err
	}

	body := models.CreateOrderRequest{
		Type:  req.Type,
		Items: cart.ItemsOf(lines),
	}
	if req.Type == models.OrderTypeDineIn {
		body.TableNumber = req.TableNumber
	} else {
		body.CustomerName = strings.TrimSpace(req.CustomerName)
		body.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	}

	order, err := s.backend.CreateOrder(ctx, body)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			utils.ErrorLogger.Errorf("Order rejected for user %d: no active session", userID)
			return models.Order{}, err
		}
		utils.ErrorLogger.Errorf("Failed to create order for user %d: %v", userID, err)
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	c.Settle(lines)
	s.floor.Invalidate()
	utils.WithFields(map[string]interface{}{
		"order_id": order.ID,
		"type":     order.Type,
		"items":    len(body.Items),
		"user_id":  userID,
	}).Info("Order created")
	return order, nil
}

// UpdateStatus moves an order along the kitchen flow after checking the
// transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, to models.OrderStatus, role models.Role) (models.Order, error) {
	current, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	if err := CanTransition(current.Status, to, role); err != nil {
		return models.Order{}, err
	}

	updated, err := s.backend.UpdateOrderStatus(ctx, orderID, to)
	if err != nil {
		return models.Order{}, fmt.Errorf("update order %d: %w", orderID, err)
	}
	s.floor.Invalidate()
	s.hub.BroadcastOrderStatus(updated)
	utils.InfoLogger.Printf("Order %d moved %s -> %s by %s", orderID, current.Status, to, role)
	return updated, nil
}

// OrderDetail is an order with the moves the dashboard may offer for it.
type OrderDetail struct {
	models.Order
	NextStatuses []models.OrderStatus `json:"nextStatuses"`
}

func (s *OrderService) List(ctx context.Context, q backend.OrderQuery) (models.PaginatedOrders, error) {
	res, err := s.backend.ListOrders(ctx, q)
	if err != nil {
		return models.PaginatedOrders{}, fmt.Errorf("list orders: %w", err)
	}
	return res, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uint) (OrderDetail, error) {
	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	return OrderDetail{Order: order, NextStatuses: NextStatuses(order.Status)}, nil
}
