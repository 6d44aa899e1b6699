package main

import (
	"strings"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/audit"
	"lanaim-backend/internal/auth"
	"lanaim-backend/internal/cart"
	"lanaim-backend/internal/config"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/feedback"
	"lanaim-backend/internal/inventory"
	"lanaim-backend/internal/kitchen"
	"lanaim-backend/internal/menu"
	"lanaim-backend/internal/models"
	"lanaim-backend/internal/notify"
	"lanaim-backend/internal/order"
	"lanaim-backend/internal/promotion"
	"lanaim-backend/internal/zone"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	order.Configure(cfg)

	// event publisher: RabbitMQ varsa oraya, yoksa sadece log
	if cfg.RabbitMQURL != "" {
		pub, err := notify.NewRabbitPublisher(cfg.RabbitMQURL)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ'ya bağlanılamadı, event'ler loglanacak")
		} else {
			notify.Use(pub)
			defer pub.Close()
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if ae, ok := apperr.As(err); ok {
				return c.Status(ae.HTTPStatus()).JSON(fiber.Map{
					"error": ae.Message,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logrus.WithError(err).Error("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true, // sepet çerezi için
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Müşteri tarafı (auth yok, sepet çerezle)
	api.Get("/menus", menu.ListMenusHandler())
	api.Get("/menus/:id", menu.GetMenuHandler())
	api.Get("/zones", zone.ListZonesHandler())

	api.Get("/cart", cart.GetCartHandler())
	api.Post("/cart/items", cart.AddLineHandler())
	api.Put("/cart/items", cart.UpdateQuantityHandler())
	api.Post("/cart/zone", cart.SetZoneHandler())
	api.Delete("/cart", cart.ClearCartHandler())

	api.Post("/orders", order.PlaceOrderHandler())
	api.Get("/orders", order.OrderHistoryHandler())
	api.Get("/orders/:number", order.GetOrderHandler())
	api.Post("/orders/:number/cancel", order.CancelOrderHandler())
	api.Put("/orders/:number/items", order.ModifyOrderHandler())

	api.Post("/feedback", feedback.CreateFeedbackHandler())

	// Personel (JWT zorunlu)
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	staff := protected.Group("/staff")
	staff.Get("/orders", order.ListOrdersHandler())
	staff.Put("/orders/:id/status", order.UpdateStatusHandler())
	staff.Get("/feedback", feedback.ListFeedbackHandler())

	// Mutfak ekranı
	kitchenRoutes := protected.Group("/kitchen")
	kitchenRoutes.Use(auth.RequireRole(models.RoleKitchenStaff, models.RoleAdmin))
	kitchenRoutes.Get("/queue", kitchen.ActiveQueueHandler())
	kitchenRoutes.Get("/ready", kitchen.ReadyQueueHandler())
	kitchenRoutes.Get("/stats", kitchen.DailyStatsHandler())

	// Admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Personel yönetimi
	adminRoutes.Post("/staff", auth.CreateStaffHandler())

	// Menü yönetimi
	adminRoutes.Post("/menus", menu.CreateMenuHandler())
	adminRoutes.Put("/menus/:id", menu.UpdateMenuHandler())
	adminRoutes.Delete("/menus/:id", menu.DeactivateMenuHandler())
	adminRoutes.Post("/menus/:id/option-groups", menu.CreateOptionGroupHandler())
	adminRoutes.Post("/option-groups/:id/options", menu.CreateOptionItemHandler())
	adminRoutes.Delete("/options/:id", menu.DeactivateOptionItemHandler())

	// Bölge yönetimi
	adminRoutes.Get("/zones", zone.ListAllZonesHandler())
	adminRoutes.Post("/zones", zone.CreateZoneHandler())
	adminRoutes.Put("/zones/:id", zone.UpdateZoneHandler())
	adminRoutes.Delete("/zones/:id", zone.DeleteZoneHandler())

	// Stok yönetimi
	adminRoutes.Get("/ingredients", inventory.ListIngredientsHandler())
	adminRoutes.Post("/ingredients", inventory.CreateIngredientHandler())
	adminRoutes.Put("/ingredients/:id", inventory.UpdateIngredientHandler())
	adminRoutes.Post("/ingredients/:id/adjustments", inventory.AdjustStockHandler())
	adminRoutes.Get("/ingredients/:id/adjustments", inventory.ListAdjustmentsHandler())

	// Reçeteler
	adminRoutes.Get("/recipes", inventory.ListBOMHandler())
	adminRoutes.Post("/recipes", inventory.CreateBOMHandler())
	adminRoutes.Put("/recipes/:id", inventory.UpdateBOMHandler())
	adminRoutes.Delete("/recipes/:id", inventory.DeactivateBOMHandler())

	// Promosyonlar
	adminRoutes.Get("/promotions", promotion.ListPromotionsHandler())
	adminRoutes.Post("/promotions", promotion.CreatePromotionHandler())
	adminRoutes.Put("/promotions/:id", promotion.UpdatePromotionHandler())
	adminRoutes.Delete("/promotions/:id", promotion.DeactivatePromotionHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	logrus.Info("Server çalışıyor port: ", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}
}
