package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/catalog"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/receipt"
	"github.com/yeremiapane/restaurant-pos/services"
)

// Deps is everything the HTTP layer is wired to.
type Deps struct {
	Catalog       *catalog.Cache
	Carts         *services.CartService
	Orders        *services.OrderService
	Floor         *services.FloorService
	Checkout      *services.CheckoutService
	Notifications *services.NotificationService
	Sessions      *services.SessionService
	Settings      *services.SettingsService
	Printer       *receipt.Printer
	Hub           *kds.KDSHub
	CORSOrigin    string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	menuCtrl := controllers.NewMenuController(d.Catalog)
	cartCtrl := controllers.NewCartController(d.Carts)
	orderCtrl := controllers.NewOrderController(d.Orders)
	tableCtrl := controllers.NewTableController(d.Floor)
	checkoutCtrl := controllers.NewCheckoutController(d.Checkout)
	notificationCtrl := controllers.NewNotificationController(d.Notifications)
	sessionCtrl := controllers.NewSessionController(d.Sessions, d.Settings)
	receiptCtrl := controllers.NewReceiptController(d.Printer)
	kdsCtrl := controllers.NewKDSController(d.Hub, d.CORSOrigin)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/dashboard", kdsCtrl.KDSHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	everyone := []models.Role{models.RoleAdmin, models.RoleCashier, models.RoleWaiter, models.RoleKitchenStaff}
	orderTakers := []models.Role{models.RoleAdmin, models.RoleCashier, models.RoleWaiter}
	cashiers := []models.Role{models.RoleAdmin, models.RoleCashier}

	// MENU
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.GET("/categories", menuCtrl.GetAllCategories)
	auth.POST("/menus/refresh", middlewares.RoleCheck(models.RoleAdmin), menuCtrl.RefreshMenu)

	// CART (per staff member)
	cart := auth.Group("/cart")
	cart.Use(middlewares.RoleCheck(orderTakers...))
	{
		cart.GET("", cartCtrl.GetCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:line_id", cartCtrl.UpdateLine)
		cart.DELETE("/items/:line_id", cartCtrl.RemoveLine)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/options/toggle", cartCtrl.ToggleOption)
		cart.POST("/options/confirm", cartCtrl.ConfirmOptions)
		cart.DELETE("/options", cartCtrl.CancelOptions)
	}

	// ORDERS
	submitLimiter := middlewares.NewRateLimiter(time.Second, 3)
	auth.GET("/orders", middlewares.RoleCheck(everyone...), orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", middlewares.RoleCheck(everyone...), orderCtrl.GetOrderByID)
	auth.POST("/orders", middlewares.RoleCheck(orderTakers...), submitLimiter.RateLimit(), orderCtrl.CreateOrder)
	auth.PUT("/orders/:order_id/status", middlewares.RoleCheck(everyone...), orderCtrl.UpdateOrderStatus)

	// TABLES
	auth.GET("/tables", middlewares.RoleCheck(orderTakers...), tableCtrl.GetAllTables)
	auth.GET("/tables/available", middlewares.RoleCheck(orderTakers...), tableCtrl.GetAvailableTables)

	// CHECKOUT (cashier/admin)
	payLimiter := middlewares.NewRateLimiter(time.Second, 5)
	checkoutGroup := auth.Group("/checkout")
	checkoutGroup.Use(middlewares.RoleCheck(cashiers...), middlewares.NoStore())
	{
		checkoutGroup.GET("/metrics", checkoutCtrl.GetMetrics)

		flow := checkoutGroup.Group("/:order_id")
		flow.Use(middlewares.CheckoutLogger())
		flow.POST("", checkoutCtrl.OpenCheckout)
		flow.GET("", checkoutCtrl.GetCheckout)
		flow.PUT("/discount", checkoutCtrl.SetDiscount)
		flow.POST("/bill", payLimiter.RateLimit(), checkoutCtrl.GenerateBill)
		flow.POST("/pay", payLimiter.RateLimit(), checkoutCtrl.Pay)
		flow.POST("/complete", payLimiter.RateLimit(), checkoutCtrl.CompletePayment)
		flow.DELETE("", checkoutCtrl.CloseCheckout)
	}

	// RECEIPTS
	receipts := auth.Group("/receipts")
	receipts.Use(middlewares.RoleCheck(cashiers...), middlewares.NoStore())
	{
		receipts.GET("", receiptCtrl.GetRecentReceipts)
		receipts.GET("/orders/:order_id", receiptCtrl.GetReceiptByOrder)
		receipts.GET("/orders/:order_id/pdf", receiptCtrl.DownloadReceipt)
	}

	// SESSION & SETTINGS
	auth.GET("/session", sessionCtrl.GetSession)
	auth.GET("/settings", sessionCtrl.GetSettings)
	auth.POST("/settings/reload", middlewares.RoleCheck(models.RoleAdmin), sessionCtrl.ReloadSettings)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)

	return r
}
