package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/models"
)

// fakeBackend stands in for the backend client in every service test.
type fakeBackend struct {
	mu sync.Mutex

	foods      []models.Food
	tables     []models.Table
	bookings   []models.Booking
	orders     map[uint]models.Order
	settings   map[string]string
	session    *models.Session
	createErr  error
	statusErr  error
	billErr    error
	payErr     error
	created    []models.CreateOrderRequest
	statusSet  []models.OrderStatus
	tableCalls int
	bills      int
	payments   int
	release    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		orders:   map[uint]models.Order{},
		settings: map[string]string{models.SettingTaxRate: "5", models.SettingDiscountRate: "10", models.SettingRestaurantName: "Siam"},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fakeBackend) ListFoods(ctx context.Context, q backend.FoodQuery) (backend.FoodPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q.Page > 1 {
		return backend.FoodPage{Total: len(f.foods)}, nil
	}
	return backend.FoodPage{Foods: f.foods, Total: len(f.foods)}, nil
}

func (f *fakeBackend) ListCategories(ctx context.Context, page, take int) ([]models.Category, int, error) {
	return nil, 0, nil
}

func (f *fakeBackend) ListTables(ctx context.Context) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tableCalls++
	return f.tables, nil
}

func (f *fakeBackend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings, nil
}

func (f *fakeBackend) ListOrders(ctx context.Context, q backend.OrderQuery) (models.PaginatedOrders, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return models.PaginatedOrders{Data: out, Total: len(out), Page: q.Page, TotalPages: 1}, nil
}

func (f *fakeBackend) GetOrder(ctx context.Context, id uint) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, &backend.APIError{StatusCode: 404, Message: "Order not found"}
	}
	return o, nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	f.mu.Lock()
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return models.Order{}, f.createErr
	}
	o := models.Order{
		ID:           uint(100 + len(f.created)),
		OrderNumber:  "ORD-20240101-abcd1234",
		Type:         req.Type,
		Status:       models.OrderStatusNew,
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeBackend) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return models.Order{}, f.statusErr
	}
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	f.statusSet = append(f.statusSet, status)
	return o, nil
}

func (f *fakeBackend) GenerateBill(ctx context.Context, req models.GenerateBillRequest) (models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills++
	if f.billErr != nil {
		return models.Bill{}, f.billErr
	}
	return models.Bill{ID: 9, OrderID: req.OrderID, InvoiceNumber: "INV-9", Tax: req.Tax, Discount: req.Discount}, nil
}

func (f *fakeBackend) ProcessPayment(ctx context.Context, req models.ProcessPaymentRequest) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments++
	if f.payErr != nil {
		return models.Transaction{}, f.payErr
	}
	return models.Transaction{ID: 1, BillID: req.BillID, Amount: req.Amount, Method: req.Method, Reference: req.Reference}, nil
}

func (f *fakeBackend) GetSettings(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

func (f *fakeBackend) CurrentSession(ctx context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}
