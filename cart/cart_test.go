package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/models"
)

func testFood(id uint, price, discount string) models.Food {
	return models.Food{
		ID:                 id,
		Name:               "Dish",
		Price:              decimal.RequireFromString(price),
		DiscountPercentage: decimal.RequireFromString(discount),
		Status:             true,
	}
}

func TestAddLineMergesSameCustomizations(t *testing.T) {
	c := New()
	burger := testFood(1, "9", "0")

	orders := [][]string{
		{"Extra Patty", "Extra Sauce"},
		{"Extra Sauce", "Extra Patty"},
		{"Extra Patty", "Extra Sauce"},
		{"Extra Sauce", "Extra Patty"},
	}
	for _, tags := range orders {
		c.AddLine(burger, tags, "")
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, []string{"Extra Patty", "Extra Sauce"}, lines[0].Customizations)
}

func TestAddLineSeparatesDifferentCustomizations(t *testing.T) {
	c := New()
	pizza := testFood(1, "12", "0")

	c.AddLine(pizza, []string{"9 Inch"}, "")
	c.AddLine(pizza, []string{"12 Inch"}, "")
	c.AddLine(pizza, nil, "")
	c.AddLine(testFood(2, "12", "0"), []string{"9 Inch"}, "")

	assert.Equal(t, 4, c.Len())
}

func TestSubtotalRecomputed(t *testing.T) {
	c := New()
	line := c.AddLine(testFood(1, "10", "10"), nil, "")
	c.AddLine(testFood(1, "10", "10"), nil, "")
	c.AddLine(testFood(1, "10", "10"), nil, "")

	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("27.00")), c.Subtotal().String())

	c.UpdateQuantity(line.ID, -1)
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(18)))

	other := c.AddLine(testFood(2, "3.50", "0"), nil, "")
	c.UpdateQuantity(other.ID, 1)
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(25)))
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	tests := []struct {
		name  string
		delta int
	}{
		{"exact", -3},
		{"overshoot", -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			f := testFood(1, "5", "0")
			line := c.AddLine(f, nil, "")
			c.AddLine(f, nil, "")
			c.AddLine(f, nil, "")

			c.UpdateQuantity(line.ID, tt.delta)
			assert.Equal(t, 0, c.Len())
			assert.True(t, c.Subtotal().IsZero())
		})
	}
}

func TestStaleLineIDsAreIgnored(t *testing.T) {
	c := New()
	line := c.AddLine(testFood(1, "5", "0"), nil, "")
	c.Remove(line.ID)

	assert.NotPanics(t, func() {
		c.UpdateQuantity(line.ID, 2)
		c.UpdateNotes(line.ID, "extra hot")
		c.Remove(line.ID)
		c.Remove("does-not-exist")
	})
	assert.Equal(t, 0, c.Len())
}

func TestUpdateNotesKeepsCustomizations(t *testing.T) {
	c := New()
	line := c.AddLine(testFood(1, "9", "0"), []string{"Extra Spicy"}, "")
	c.UpdateNotes(line.ID, "no onion")

	items := c.OrderItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Options: Extra Spicy | no onion", items[0].Notes)
	assert.Equal(t, []string{"Extra Spicy"}, c.Lines()[0].Customizations)
}

func TestLinesReturnsCopies(t *testing.T) {
	c := New()
	c.AddLine(testFood(1, "9", "0"), []string{"Extra Spicy"}, "")

	lines := c.Lines()
	lines[0].Quantity = 99
	lines[0].Customizations[0] = "changed"

	fresh := c.Lines()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "Extra Spicy", fresh[0].Customizations[0])
}

func TestConcurrentAdds(t *testing.T) {
	c := New()
	f := testFood(1, "2", "0")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddLine(f, []string{"a", "b"}, "")
		}()
	}
	wg.Wait()

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 50, lines[0].Quantity)
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Get(1).AddLine(testFood(1, "2", "0"), nil, "")

	assert.Equal(t, 1, s.Get(1).Len())
	assert.Equal(t, 0, s.Get(2).Len())

	s.Drop(1)
	assert.Equal(t, 0, s.Get(1).Len())
}

func TestSettleRemovesOnlySubmittedUnits(t *testing.T) {
	c := New()
	burger := testFood(1, "9", "0")
	fries := testFood(2, "4", "0")
	c.AddLine(burger, nil, "")
	c.AddLine(fries, nil, "")
	snapshot := c.Lines()
	require.Len(t, ItemsOf(snapshot), 2)

	c.AddLine(burger, nil, "")
	c.AddLine(testFood(3, "6", "0"), nil, "")
	c.Settle(snapshot)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].FoodID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, uint(3), lines[1].FoodID)
}

func TestSettleIgnoresRemovedLines(t *testing.T) {
	c := New()
	line := c.AddLine(testFood(1, "9", "0"), nil, "")
	snapshot := c.Lines()
	c.Remove(line.ID)

	c.Settle(snapshot)
	assert.Zero(t, c.Len())
}
