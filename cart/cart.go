// Package cart holds the in-progress order lines of one staff member.
package cart

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/customization"
	"github.com/yeremiapane/restaurant-pos/models"
)

// Cart is safe for concurrent use; every operation runs to completion under
// the lock before the next one starts.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
	newID func() string
}

func New() *Cart {
	return &Cart{newID: uuid.NewString}
}

func tagKey(tags []string) string {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func (c *Cart) find(lineID string) int {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// AddLine adds one unit of food at its discounted price. A line with the same
// food and the same set of customizations, in any order, gets its quantity
// bumped instead of a new line being created.
func (c *Cart) AddLine(food models.Food, customizations []string, notes string) models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := tagKey(customizations)
	for i := range c.lines {
		if c.lines[i].FoodID == food.ID && tagKey(c.lines[i].Customizations) == key {
			c.lines[i].Quantity++
			return cloneLine(c.lines[i])
		}
	}

	tags := make([]string, len(customizations))
	copy(tags, customizations)
	line := models.CartLine{
		ID:             c.newID(),
		FoodID:         food.ID,
		Name:           food.Name,
		Image:          food.Image,
		UnitPrice:      food.DiscountedPrice(),
		Quantity:       1,
		Notes:          notes,
		Customizations: tags,
	}
	c.lines = append(c.lines, line)
	return cloneLine(line)
}

// UpdateQuantity adds delta to the line's quantity. Reaching zero or below
// removes the line. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(lineID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(lineID)
	if i < 0 {
		return
	}
	q := c.lines[i].Quantity + delta
	if q <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = q
}

// UpdateNotes replaces the free-form notes; customizations are untouched.
func (c *Cart) UpdateNotes(lineID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(lineID); i >= 0 {
		c.lines[i].Notes = text
	}
}

func (c *Cart) Remove(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(lineID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = cloneLine(l)
	}
	return out
}

// Subtotal is computed from the current lines on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// OrderItems converts the lines into the backend's order item shape with the
// customizations folded into the notes.
func (c *Cart) OrderItems() []models.OrderItemRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ItemsOf(c.lines)
}

// ItemsOf is OrderItems for a snapshot taken with Lines.
func ItemsOf(lines []models.CartLine) []models.OrderItemRequest {
	items := make([]models.OrderItemRequest, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItemRequest{
			FoodID:   l.FoodID,
			Quantity: l.Quantity,
			Notes:    customization.FormatNotes(l.Customizations, l.Notes),
		})
	}
	return items
}

// Settle takes the submitted lines out of the cart. Units added to a line
// after the snapshot was taken, and lines added since, stay in the cart.
func (c *Cart) Settle(submitted []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sl := range submitted {
		i := c.find(sl.ID)
		if i < 0 {
			continue
		}
		if q := c.lines[i].Quantity - sl.Quantity; q > 0 {
			c.lines[i].Quantity = q
			continue
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func cloneLine(l models.CartLine) models.CartLine {
	tags := make([]string, len(l.Customizations))
	copy(tags, l.Customizations)
	l.Customizations = tags
	return l
}
