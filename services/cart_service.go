package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/cart"
	"github.com/yeremiapane/restaurant-pos/catalog"
	"github.com/yeremiapane/restaurant-pos/customization"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// PendingItem is the open customization dialog of one staff member.
type PendingItem struct {
	FoodID   uint                 `json:"foodId"`
	Name     string               `json:"name"`
	Mode     models.SelectionMode `json:"mode"`
	Options  []string             `json:"options"`
	Selected []string             `json:"selected"`
}

// CartView is what the order screen renders.
type CartView struct {
	Lines    []models.CartLine `json:"lines"`
	Count    int               `json:"count"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	Pending  *PendingItem      `json:"pending,omitempty"`
}

// AddResult tells the caller what an add did. Nothing is set when the food
// could not be added.
type AddResult struct {
	Line    *models.CartLine `json:"line,omitempty"`
	Pending *PendingItem     `json:"pending,omitempty"`
	Skipped bool             `json:"skipped"`
}

type CartService struct {
	carts    *cart.Store
	catalog  *catalog.Cache
	resolver *customization.Resolver

	mu      sync.Mutex
	pending map[uint]*customization.Selection
}

func NewCartService(carts *cart.Store, cat *catalog.Cache, resolver *customization.Resolver) *CartService {
	return &CartService{
		carts:    carts,
		catalog:  cat,
		resolver: resolver,
		pending:  map[uint]*customization.Selection{},
	}
}

func pendingView(sel *customization.Selection) *PendingItem {
	if sel == nil {
		return nil
	}
	return &PendingItem{
		FoodID:   sel.Food.ID,
		Name:     sel.Food.Name,
		Mode:     sel.Spec.Mode,
		Options:  sel.Spec.Options,
		Selected: sel.Selected(),
	}
}

// AddItem puts one unit of a food in the staff member's cart, or opens a
// customization dialog when the food needs one. Unknown or unavailable foods
// are skipped without error.
func (s *CartService) AddItem(ctx context.Context, userID, foodID uint, notes string) AddResult {
	if err := s.catalog.EnsureFresh(ctx); err != nil {
		utils.ErrorLogger.Errorf("Catalog refresh failed, using last snapshot: %v", err)
	}

	food, ok := s.catalog.Lookup(foodID)
	if !ok {
		utils.InfoLogger.Printf("Food %d skipped: unknown or unavailable", foodID)
		return AddResult{Skipped: true}
	}

	if sel, needs := s.resolver.Begin(food); needs {
		s.mu.Lock()
		s.pending[userID] = sel
		view := pendingView(sel)
		s.mu.Unlock()
		return AddResult{Pending: view}
	}

	line := s.carts.Get(userID).AddLine(food, nil, notes)
	return AddResult{Line: &line}
}

func (s *CartService) Pending(userID uint) *PendingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pendingView(s.pending[userID])
}

func (s *CartService) Toggle(userID uint, option string) (*PendingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.pending[userID]
	if !ok {
		return nil, ErrNoPendingItem
	}
	if err := sel.Toggle(option); err != nil {
		return nil, err
	}
	return pendingView(sel), nil
}

// Confirm adds the customized food to the cart. A rejected confirmation
// leaves the dialog open.
func (s *CartService) Confirm(userID uint, notes string) (models.CartLine, error) {
	s.mu.Lock()
	sel, ok := s.pending[userID]
	if !ok {
		s.mu.Unlock()
		return models.CartLine{}, ErrNoPendingItem
	}
	tags, err := sel.Confirm()
	if err != nil {
		s.mu.Unlock()
		return models.CartLine{}, err
	}
	delete(s.pending, userID)
	s.mu.Unlock()

	return s.carts.Get(userID).AddLine(sel.Food, tags, notes), nil
}

// CancelPending discards the dialog; the cart is not touched.
func (s *CartService) CancelPending(userID uint) {
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
}

func (s *CartService) UpdateQuantity(userID uint, lineID string, delta int) CartView {
	s.carts.Get(userID).UpdateQuantity(lineID, delta)
	return s.View(userID)
}

func (s *CartService) UpdateNotes(userID uint, lineID, notes string) CartView {
	s.carts.Get(userID).UpdateNotes(lineID, notes)
	return s.View(userID)
}

func (s *CartService) Remove(userID uint, lineID string) CartView {
	s.carts.Get(userID).Remove(lineID)
	return s.View(userID)
}

func (s *CartService) Clear(userID uint) CartView {
	s.carts.Get(userID).Clear()
	s.CancelPending(userID)
	return s.View(userID)
}

func (s *CartService) View(userID uint) CartView {
	c := s.carts.Get(userID)
	lines := c.Lines()
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return CartView{
		Lines:    lines,
		Count:    count,
		Subtotal: c.Subtotal(),
		Pending:  s.Pending(userID),
	}
}
