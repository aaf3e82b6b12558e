package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-pos/catalog"
	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Pruner is implemented by ledgers that need periodic cleanup.
type Pruner interface {
	Prune(ctx context.Context, ttl time.Duration) (int64, error)
}

// RealtimeService applies backend events from the bridge inbox to the local
// caches and fans them out to the dashboards. Replayed events are skipped.
type RealtimeService struct {
	Inbox         <-chan kds.Event
	Ledger        kds.Ledger
	StopChan      chan struct{}
	PruneInterval time.Duration
	EventTTL      time.Duration

	floor         *FloorService
	settings      *SettingsService
	catalog       *catalog.Cache
	registry      *checkout.Registry
	hub           *kds.KDSHub
	notifications *NotificationService
}

func NewRealtimeService(
	inbox <-chan kds.Event,
	ledger kds.Ledger,
	floor *FloorService,
	settings *SettingsService,
	cat *catalog.Cache,
	registry *checkout.Registry,
	hub *kds.KDSHub,
	notifications *NotificationService,
) *RealtimeService {
	return &RealtimeService{
		Inbox:         inbox,
		Ledger:        ledger,
		StopChan:      make(chan struct{}),
		PruneInterval: time.Hour,
		EventTTL:      24 * time.Hour,
		floor:         floor,
		settings:      settings,
		catalog:       cat,
		registry:      registry,
		hub:           hub,
		notifications: notifications,
	}
}

func (rs *RealtimeService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(rs.PruneInterval)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-rs.Inbox:
				if !ok {
					utils.InfoLogger.Println("Realtime inbox closed")
					return
				}
				if err := rs.Handle(ctx, ev); err != nil {
					utils.ErrorLogger.Errorf("Error applying %s: %v", ev.Name, err)
				}
			case <-ticker.C:
				rs.prune(ctx)
			case <-rs.StopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (rs *RealtimeService) Stop() {
	close(rs.StopChan)
}

func (rs *RealtimeService) prune(ctx context.Context) {
	p, ok := rs.Ledger.(Pruner)
	if !ok {
		return
	}
	n, err := p.Prune(ctx, rs.EventTTL)
	if err != nil {
		utils.ErrorLogger.Errorf("Error pruning event ledger: %v", err)
		return
	}
	if n > 0 {
		utils.InfoLogger.Printf("Pruned %d processed events", n)
	}
}

// Handle applies one event unless the ledger has seen it before. A ledger
// failure does not block the event. An event that fails to apply is
// forgotten so the backend's resend is applied.
func (rs *RealtimeService) Handle(ctx context.Context, ev kds.Event) error {
	key, tracked := ev.Key()
	if tracked {
		first, err := rs.Ledger.MarkProcessed(ctx, key, ev.Name)
		if err != nil {
			utils.ErrorLogger.Errorf("Event ledger unavailable, applying %s anyway: %v", ev.Name, err)
			tracked = false
		} else if !first {
			utils.InfoLogger.Printf("Skipping replayed event %s", ev.Name)
			return nil
		}
	}

	utils.InfoLogger.Printf("Processing event: %s", ev.Name)
	err := rs.apply(ctx, ev)
	if err != nil && tracked {
		if ferr := rs.Ledger.Forget(ctx, key); ferr != nil {
			utils.ErrorLogger.Errorf("Error releasing event %s: %v", key, ferr)
		}
	}
	return err
}

func (rs *RealtimeService) apply(ctx context.Context, ev kds.Event) error {
	switch ev.Name {
	case kds.EventNewOrder:
		return rs.processNewOrder(ctx, ev.Data)
	case kds.EventOrderStatus:
		return rs.processOrderStatus(ctx, ev.Data)
	case kds.EventSettingsUpdated:
		return rs.processSettings(ctx, ev.Data)
	case kds.EventDiscountsUpdated:
		return rs.processDiscounts(ctx, ev.Data)
	default:
		utils.InfoLogger.Printf("Ignoring unknown event %s", ev.Name)
		return nil
	}
}

func (rs *RealtimeService) processNewOrder(ctx context.Context, data json.RawMessage) error {
	rs.floor.Invalidate()

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return fmt.Errorf("decode order: %w", err)
	}
	rs.hub.BroadcastNewOrder(order)

	msg := fmt.Sprintf("New order #%s received", strings.ToUpper(order.ShortNumber(8)))
	if order.TableNumber != "" {
		msg += " for table " + order.TableNumber
	}
	_, err := rs.notifications.Notify(ctx, kds.EventNewOrder, "New Order", msg, true)
	return err
}

func (rs *RealtimeService) processOrderStatus(ctx context.Context, data json.RawMessage) error {
	rs.floor.Invalidate()

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return fmt.Errorf("decode order: %w", err)
	}
	rs.registry.OrderChanged(order)
	rs.hub.BroadcastOrderStatus(order)

	switch order.Status {
	case models.OrderStatusPaid:
		rs.hub.BroadcastReportsStale(order.ID)
	case models.OrderStatusReady:
		msg := fmt.Sprintf("Order #%s is ready to serve", strings.ToUpper(order.ShortNumber(8)))
		if _, err := rs.notifications.Notify(ctx, kds.EventOrderStatus, "Order Ready", msg, false); err != nil {
			return err
		}
	}
	return nil
}

func (rs *RealtimeService) processSettings(ctx context.Context, data json.RawMessage) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	m := make(map[string]string, len(raw))
	for k, v := range raw {
		if v != nil {
			m[k] = fmt.Sprint(v)
		}
	}

	st := models.SettingsFromMap(m)
	if err := rs.settings.Replace(st); err != nil {
		return err
	}
	rs.registry.SettingsChanged(st)
	rs.hub.BroadcastSettings(st)

	msg := fmt.Sprintf("Tax %s%%, discount %s%%", utils.FormatPercent(st.TaxRate), utils.FormatPercent(st.DiscountRate))
	_, err := rs.notifications.Notify(ctx, kds.EventSettingsUpdated, "Settings Updated", msg, false)
	return err
}

func (rs *RealtimeService) processDiscounts(ctx context.Context, data json.RawMessage) error {
	var updates []models.DiscountUpdate
	if err := json.Unmarshal(data, &updates); err != nil {
		return fmt.Errorf("decode discounts: %w", err)
	}
	changed := rs.catalog.ApplyDiscounts(updates)
	rs.hub.BroadcastDiscounts(updates)
	if changed == 0 {
		return nil
	}

	msg := fmt.Sprintf("%d menu items have new discounts", changed)
	_, err := rs.notifications.Notify(ctx, kds.EventDiscountsUpdated, "Discounts Updated", msg, false)
	return err
}
