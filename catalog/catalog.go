// Package catalog keeps the terminal's snapshot of the backend menu.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	pageSize = 100
	// MaxTake bounds one page of the menu screen.
	MaxTake = 100
)

// Source is the part of the backend client the cache reads from.
type Source interface {
	ListFoods(ctx context.Context, q backend.FoodQuery) (backend.FoodPage, error)
	ListCategories(ctx context.Context, page, take int) ([]models.Category, int, error)
}

type Cache struct {
	src Source

	mu          sync.RWMutex
	foods       map[uint]models.Food
	order       []uint
	categories  []models.Category
	stale       bool
	refreshedAt time.Time

	// gen moves on every Invalidate and ApplyDiscounts; discounts holds the
	// pushed percentages a refresh that started earlier must not undo.
	gen       uint64
	discounts map[uint]decimal.Decimal
}

func New(src Source) *Cache {
	return &Cache{
		src:       src,
		foods:     map[uint]models.Food{},
		stale:     true,
		discounts: map[uint]decimal.Decimal{},
	}
}

// Refresh fetches every page of foods and categories and swaps the snapshot
// in one step. On error the previous snapshot is kept. When the cache was
// invalidated or discounted mid-fetch, the snapshot is swapped in with the
// pushed discounts reapplied but stays stale.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	var foods []models.Food
	for page := 1; ; page++ {
		res, err := c.src.ListFoods(ctx, backend.FoodQuery{Page: page, Take: pageSize})
		if err != nil {
			return fmt.Errorf("fetch foods page %d: %w", page, err)
		}
		foods = append(foods, res.Foods...)
		if len(res.Foods) == 0 || len(foods) >= res.Total {
			break
		}
	}

	var categories []models.Category
	for page := 1; ; page++ {
		res, total, err := c.src.ListCategories(ctx, page, pageSize)
		if err != nil {
			return fmt.Errorf("fetch categories page %d: %w", page, err)
		}
		categories = append(categories, res...)
		if len(res) == 0 || len(categories) >= total {
			break
		}
	}

	byID := make(map[uint]models.Food, len(foods))
	order := make([]uint, 0, len(foods))
	for _, f := range foods {
		if _, dup := byID[f.ID]; !dup {
			order = append(order, f.ID)
		}
		byID[f.ID] = f
	}

	c.mu.Lock()
	if c.gen == gen {
		c.stale = false
		c.discounts = map[uint]decimal.Decimal{}
	} else {
		for id, pct := range c.discounts {
			if f, ok := byID[id]; ok {
				f.DiscountPercentage = pct
				byID[id] = f
			}
		}
	}
	c.foods = byID
	c.order = order
	c.categories = categories
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	utils.InfoLogger.Printf("Catalog refreshed: %d foods, %d categories", len(order), len(categories))
	return nil
}

// EnsureFresh refreshes only when the snapshot was never loaded or was invalidated.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	c.mu.RLock()
	stale := c.stale
	c.mu.RUnlock()
	if !stale {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

// Lookup returns the food when it is known and available. Callers treat a
// false result as "cannot be added" and do nothing.
func (c *Cache) Lookup(foodID uint) (models.Food, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.foods[foodID]
	if !ok || !f.Available() {
		return models.Food{}, false
	}
	return f, true
}

type Filter struct {
	Keyword    string
	CategoryID uint
	Page       int
	Take       int
}

// Foods filters the snapshot in backend order and returns one page plus the
// number of matches.
func (c *Cache) Foods(f Filter) ([]models.Food, int) {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))

	c.mu.RLock()
	matched := make([]models.Food, 0, len(c.order))
	for _, id := range c.order {
		food := c.foods[id]
		if f.CategoryID != 0 && food.CategoryID != f.CategoryID {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(food.Name), keyword) {
			continue
		}
		matched = append(matched, food)
	}
	c.mu.RUnlock()

	total := len(matched)
	if f.Take <= 0 {
		return matched, total
	}
	take := f.Take
	if take > MaxTake {
		take = MaxTake
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	if page-1 > total/take {
		return []models.Food{}, total
	}
	start := (page - 1) * take
	if start >= total {
		return []models.Food{}, total
	}
	end := start + take
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func (c *Cache) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ApplyDiscounts sets discount percentages from a realtime update and returns
// how many foods actually changed. Replaying the same update changes nothing.
func (c *Cache) ApplyDiscounts(updates []models.DiscountUpdate) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	changed := 0
	for _, u := range updates {
		f, ok := c.foods[u.ID]
		if !ok {
			continue
		}
		c.discounts[u.ID] = u.DiscountPercentage
		if f.DiscountPercentage.Equal(u.DiscountPercentage) {
			continue
		}
		f.DiscountPercentage = u.DiscountPercentage
		c.foods[u.ID] = f
		changed++
	}
	return changed
}
