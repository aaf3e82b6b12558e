package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/yeremiapane/restaurant-pos/models"
)

type FoodQuery struct {
	Page       int
	Take       int
	Keyword    string
	CategoryID uint
}

type FoodPage struct {
	Foods []models.Food
	Total int
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type listData[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func pageQuery(page, take int) url.Values {
	q := url.Values{}
	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = 10
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("take", strconv.Itoa(take))
	return q
}

func (c *Client) ListFoods(ctx context.Context, fq FoodQuery) (FoodPage, error) {
	q := pageQuery(fq.Page, fq.Take)
	if fq.Keyword != "" {
		q.Set("keyword", fq.Keyword)
	}
	if fq.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatUint(uint64(fq.CategoryID), 10))
	}

	var out envelope[listData[models.Food]]
	if err := c.do(ctx, "GET", "/food", q, nil, &out); err != nil {
		return FoodPage{}, err
	}
	return FoodPage{Foods: out.Data.Data, Total: out.Data.Total}, nil
}

func (c *Client) ListCategories(ctx context.Context, page, take int) ([]models.Category, int, error) {
	var out envelope[listData[models.Category]]
	if err := c.do(ctx, "GET", "/category", pageQuery(page, take), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Data.Data, out.Data.Total, nil
}

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := c.do(ctx, "GET", "/table", nil, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, "GET", "/booking", nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

type OrderQuery struct {
	Status models.OrderStatus
	Page   int
	Take   int
}

func (c *Client) ListOrders(ctx context.Context, oq OrderQuery) (models.PaginatedOrders, error) {
	q := pageQuery(oq.Page, oq.Take)
	if oq.Status != "" {
		q.Set("status", string(oq.Status))
	}

	var out models.PaginatedOrders
	if err := c.do(ctx, "GET", "/order", q, nil, &out); err != nil {
		return models.PaginatedOrders{}, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "GET", fmt.Sprintf("/order/%d", id), nil, nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	var out models.CreateOrderResponse
	if err := c.do(ctx, "POST", "/order", nil, req, &out); err != nil {
		return models.Order{}, err
	}
	return out.Order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (models.Order, error) {
	body := map[string]models.OrderStatus{"status": status}

	var order models.Order
	if err := c.do(ctx, "PUT", fmt.Sprintf("/order/%d/status", id), nil, body, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *Client) GenerateBill(ctx context.Context, req models.GenerateBillRequest) (models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, "POST", "/billing/generate", nil, req, &bill); err != nil {
		return models.Bill{}, err
	}
	return bill, nil
}

func (c *Client) ProcessPayment(ctx context.Context, req models.ProcessPaymentRequest) (models.Transaction, error) {
	var out models.ProcessPaymentResponse
	if err := c.do(ctx, "POST", "/billing/pay", nil, req, &out); err != nil {
		return models.Transaction{}, err
	}
	return out.Transaction, nil
}

func (c *Client) GetSettings(ctx context.Context) (map[string]string, error) {
	settings := map[string]string{}
	if err := c.do(ctx, "GET", "/settings", nil, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CurrentSession returns nil when the cashier has no open session.
func (c *Client) CurrentSession(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	if err := c.do(ctx, "GET", "/session/current", nil, nil, &session); err != nil {
		return nil, err
	}
	return session, nil
}
