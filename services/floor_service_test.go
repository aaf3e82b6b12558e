package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/models"
)

func TestFloorSnapshotCachesUntilInvalidated(t *testing.T) {
	be := newFakeBackend()
	be.tables = []models.Table{{ID: 1, Number: "1"}, {ID: 2, Number: "2"}}
	s := NewFloorService(be)

	_, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, be.tableCalls)

	s.Invalidate()
	_, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, be.tableCalls)
}

func TestFloorBoard(t *testing.T) {
	be := newFakeBackend()
	be.tables = []models.Table{{ID: 1, Number: "1"}, {ID: 2, Number: "2"}}
	be.orders[9] = models.Order{ID: 9, TableNumber: "2", Status: models.OrderStatusReady}
	s := NewFloorService(be)

	board, err := s.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, models.TableAvailable, board[0].Status)
	assert.Equal(t, models.TableOccupied, board[1].Status)
}

// heldOrders parks the first ListOrders call after it has read the orders.
type heldOrders struct {
	*fakeBackend
	once    sync.Once
	entered chan struct{}
	gate    chan struct{}
}

func (h *heldOrders) ListOrders(ctx context.Context, q backend.OrderQuery) (models.PaginatedOrders, error) {
	res, err := h.fakeBackend.ListOrders(ctx, q)
	h.once.Do(func() {
		close(h.entered)
		<-h.gate
	})
	return res, err
}

func TestFloorInvalidateDuringFetch(t *testing.T) {
	be := newFakeBackend()
	be.tables = []models.Table{{ID: 1, Number: "7"}}
	src := &heldOrders{fakeBackend: be, entered: make(chan struct{}), gate: make(chan struct{})}
	s := NewFloorService(src)

	done := make(chan error, 1)
	go func() {
		_, err := s.Snapshot(context.Background())
		done <- err
	}()
	<-src.entered

	be.mu.Lock()
	be.orders[3] = models.Order{ID: 3, TableNumber: "7", Status: models.OrderStatusNew}
	be.mu.Unlock()
	s.Invalidate()
	close(src.gate)
	require.NoError(t, <-done)

	floor, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, floor.Orders, 1)
}
