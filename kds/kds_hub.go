package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event types
const (
	EventNewOrder         = "new_order"
	EventOrderStatus      = "order_status_update"
	EventSettingsUpdated  = "settings_updated"
	EventDiscountsUpdated = "food_discounts_updated"
	EventNotification     = "notification"
	EventCheckoutUpdate   = "checkout_update"
	EventReceiptGenerated = "receipt_generated"
	EventTableUpdate      = "table_update"
	EventReportsStale     = "reports_stale"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// KDSHub holds every dashboard connected to this terminal with its role.
type KDSHub struct {
	clients map[Conn]models.Role
	mutex   sync.Mutex
}

func NewHub() *KDSHub {
	return &KDSHub{clients: make(map[Conn]models.Role)}
}

// RegisterClient -> adds a dashboard connection
func (h *KDSHub) RegisterClient(conn Conn, role models.Role) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// UnregisterClient -> drops and closes the connection
func (h *KDSHub) UnregisterClient(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *KDSHub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastNewOrder -> every dashboard refreshes; the alert payload only
// carries the sound flag for roles that hear order alerts.
func (h *KDSHub) BroadcastNewOrder(order models.Order) {
	h.broadcastFunc(func(role models.Role) (Message, bool) {
		return Message{
			Event: EventNewOrder,
			Data: map[string]interface{}{
				"order": order,
				"alert": role.HearsOrderAlerts(),
			},
		}, true
	})
}

// BroadcastOrderStatus -> kitchen and floor boards
func (h *KDSHub) BroadcastOrderStatus(order models.Order) {
	h.Broadcast(Message{Event: EventOrderStatus, Data: order})
}

// BroadcastSettings -> new tax/discount rates
func (h *KDSHub) BroadcastSettings(settings models.Settings) {
	h.Broadcast(Message{Event: EventSettingsUpdated, Data: settings})
}

// BroadcastDiscounts -> menu prices changed
func (h *KDSHub) BroadcastDiscounts(updates []models.DiscountUpdate) {
	h.Broadcast(Message{Event: EventDiscountsUpdated, Data: updates})
}

// BroadcastNotification -> toast on every dashboard
func (h *KDSHub) BroadcastNotification(n models.Notification) {
	h.Broadcast(Message{Event: EventNotification, Data: n})
}

// BroadcastCheckout -> cashier screens follow the settlement state
func (h *KDSHub) BroadcastCheckout(view interface{}) {
	h.BroadcastToRoles(Message{Event: EventCheckoutUpdate, Data: view}, models.RoleCashier, models.RoleAdmin)
}

// BroadcastReceipt -> receipt printed
func (h *KDSHub) BroadcastReceipt(receipt models.Receipt) {
	h.BroadcastToRoles(Message{Event: EventReceiptGenerated, Data: receipt}, models.RoleCashier, models.RoleAdmin)
}

// BroadcastTables -> table board changed
func (h *KDSHub) BroadcastTables(board interface{}) {
	h.Broadcast(Message{Event: EventTableUpdate, Data: board})
}

// BroadcastReportsStale -> sales figures changed after a payment
func (h *KDSHub) BroadcastReportsStale(orderID uint) {
	h.BroadcastToRoles(Message{Event: EventReportsStale, Data: map[string]uint{"orderId": orderID}}, models.RoleCashier, models.RoleAdmin)
}

// Broadcast -> every connected dashboard
func (h *KDSHub) Broadcast(msg Message) {
	h.broadcastFunc(func(models.Role) (Message, bool) { return msg, true })
}

// BroadcastToRoles -> only dashboards logged in with one of roles
func (h *KDSHub) BroadcastToRoles(msg Message, roles ...models.Role) {
	h.broadcastFunc(func(role models.Role) (Message, bool) {
		for _, r := range roles {
			if r == role {
				return msg, true
			}
		}
		return Message{}, false
	})
}

func (h *KDSHub) broadcastFunc(build func(role models.Role) (Message, bool)) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for conn, role := range h.clients {
		msg, ok := build(role)
		if !ok {
			continue
		}
		data, err := json.Marshal(msg)
		if err != nil {
			utils.ErrorLogger.Errorf("Error marshaling %s message for %s client: %v", msg.Event, role, err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to %s client: %v", msg.Event, role, err)
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}
	utils.InfoLogger.Debugf("Broadcast delivered to %d clients", sent)
}
