package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/seating"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	floorPageSize   = 100
	floorMaxRefetch = 3
)

// FloorSource is what the floor view reads from the backend.
type FloorSource interface {
	ListTables(ctx context.Context) ([]models.Table, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListOrders(ctx context.Context, q backend.OrderQuery) (models.PaginatedOrders, error)
}

// FloorService caches tables, bookings and orders until a realtime event
// marks them stale.
type FloorService struct {
	src FloorSource

	mu    sync.Mutex
	floor seating.Floor
	stale bool
	gen   uint64
}

func NewFloorService(src FloorSource) *FloorService {
	return &FloorService{src: src, stale: true}
}

func (s *FloorService) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.gen++
	s.mu.Unlock()
}

// Snapshot returns the cached floor, fetching it first when stale. A fetch
// that was overtaken by Invalidate is retried and never marks the cache fresh.
func (s *FloorService) Snapshot(ctx context.Context) (seating.Floor, error) {
	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		if !s.stale {
			f := s.floor
			s.mu.Unlock()
			return f, nil
		}
		gen := s.gen
		s.mu.Unlock()

		f, err := s.fetch(ctx)
		if err != nil {
			return seating.Floor{}, err
		}

		s.mu.Lock()
		s.floor = f
		current := s.gen == gen
		if current {
			s.stale = false
		}
		s.mu.Unlock()

		if current || attempt >= floorMaxRefetch {
			return f, nil
		}
		utils.InfoLogger.Printf("Floor changed during refresh, fetching again")
	}
}

func (s *FloorService) fetch(ctx context.Context) (seating.Floor, error) {
	tables, err := s.src.ListTables(ctx)
	if err != nil {
		return seating.Floor{}, fmt.Errorf("fetch tables: %w", err)
	}
	bookings, err := s.src.ListBookings(ctx)
	if err != nil {
		return seating.Floor{}, fmt.Errorf("fetch bookings: %w", err)
	}

	var orders []models.Order
	for page := 1; ; page++ {
		res, err := s.src.ListOrders(ctx, backend.OrderQuery{Page: page, Take: floorPageSize})
		if err != nil {
			return seating.Floor{}, fmt.Errorf("fetch orders page %d: %w", page, err)
		}
		orders = append(orders, res.Data...)
		if len(res.Data) == 0 || page >= res.TotalPages {
			break
		}
	}

	utils.InfoLogger.Printf("Floor refreshed: %d tables, %d bookings, %d orders", len(tables), len(bookings), len(orders))
	return seating.Floor{Tables: tables, Orders: orders, Bookings: bookings}, nil
}

// Board is the cashier's table screen.
func (s *FloorService) Board(ctx context.Context) ([]seating.TableState, error) {
	f, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return seating.Statuses(f), nil
}
