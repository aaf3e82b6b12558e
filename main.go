package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/backend"
	"github.com/yeremiapane/restaurant-pos/cart"
	"github.com/yeremiapane/restaurant-pos/catalog"
	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/customization"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/receipt"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := backend.NewClient(cfg.BackendURL, cfg.BackendToken, cfg.BackendTimeout)

	menu := catalog.New(client)
	if err := menu.Refresh(ctx); err != nil {
		utils.ErrorLogger.Errorf("Initial menu load failed, will retry on first request: %v", err)
	}

	resolver, err := customization.NewResolverFromFile(cfg.CustomizationRulesFile)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load customization rules: %v", err)
	}

	hub := kds.NewHub()

	printer := receipt.NewPrinter(db, cfg.ReceiptDir)
	printer.OnPrinted = hub.BroadcastReceipt
	registry := checkout.NewRegistry(client, printer, cfg.PrintDelay)

	carts := cart.NewStore()
	floor := services.NewFloorService(client)
	settings := services.NewSettingsService(client)
	if _, err := settings.Reload(ctx); err != nil {
		utils.ErrorLogger.Errorf("Initial settings load failed: %v", err)
	}
	notifications := services.NewNotificationService(db, hub)

	monitor := services.NewCheckoutMonitor(5 * time.Minute)
	monitor.Start()
	defer monitor.Stop()

	if cfg.RealtimeURL != "" {
		bridge := kds.NewBridge(cfg.RealtimeURL, cfg.BackendToken)
		ledger := newLedger(ctx, cfg, db)
		realtime := services.NewRealtimeService(bridge.Inbox(), ledger, floor, settings, menu, registry, hub, notifications)
		realtime.EventTTL = cfg.LedgerTTL
		go bridge.Run(ctx)
		realtime.Start(ctx)
		defer realtime.Stop()
	} else {
		utils.InfoLogger.Println("REALTIME_URL not set, dashboards refresh on request only")
	}

	r := router.SetupRouter(router.Deps{
		Catalog:       menu,
		Carts:         services.NewCartService(carts, menu, resolver),
		Orders:        services.NewOrderService(client, carts, floor, hub),
		Floor:         floor,
		Checkout:      services.NewCheckoutService(client, settings, registry, hub, monitor),
		Notifications: notifications,
		Sessions:      services.NewSessionService(client),
		Settings:      settings,
		Printer:       printer,
		Hub:           hub,
		CORSOrigin:    cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server shutdown: %v", err)
	}
}

// newLedger uses Redis when REDIS_ADDR is set and reachable, else the local
// database.
func newLedger(ctx context.Context, cfg *config.Config, db *gorm.DB) kds.Ledger {
	if cfg.RedisAddr == "" {
		return kds.NewGormLedger(db)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis at %s unreachable, using database ledger: %v", cfg.RedisAddr, err)
		return kds.NewGormLedger(db)
	}
	utils.InfoLogger.Printf("Using Redis event ledger at %s", cfg.RedisAddr)
	return kds.NewRedisLedger(rdb, cfg.LedgerTTL)
}
