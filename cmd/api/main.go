package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ordelia/order-insight-be/internal/core/analytics"
	"github.com/ordelia/order-insight-be/internal/core/messaging"
	"github.com/ordelia/order-insight-be/internal/core/schedule"
	"github.com/ordelia/order-insight-be/internal/modules/insight/handlers"
	"github.com/ordelia/order-insight-be/internal/modules/insight/repositories"
	"github.com/ordelia/order-insight-be/internal/modules/insight/services"
	"github.com/ordelia/order-insight-be/internal/shared/config"
	"github.com/ordelia/order-insight-be/internal/shared/database"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	log.Printf("🚀 Starting order-insight-be on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	orderRepo := repositories.NewOrderRepo(db.GORM)
	customerRepo := repositories.NewCustomerRepo(db.GORM)
	aggregator := analytics.NewAggregator(db.GORM)

	// Init messaging gateway. Without a WAHA base URL the console provider
	// is used so local development needs no gateway.
	providerType := messaging.ProviderConsole
	if cfg.WAHABaseURL != "" {
		providerType = messaging.ProviderWAHA
	}
	provider, err := messaging.NewProvider(&messaging.ProviderConfig{
		Type:          providerType,
		WAHABaseURL:   cfg.WAHABaseURL,
		WAHAAPIKey:    cfg.WAHAAPIKey,
		WAHASessionID: cfg.WAHASessionID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize messaging provider: %v", err)
	}
	if err := provider.Connect(); err != nil {
		log.Printf("⚠️  Messaging gateway not connected: %v", err)
	}
	log.Printf("📱 Using messaging provider: %s", provider.GetProviderName())

	// Init services
	insightService := services.NewInsightService(orderRepo, customerRepo, aggregator, cfg.AnalysisWindowDays)
	webhookService := services.NewWebhookService(orderRepo, customerRepo, provider)
	digestService := services.NewDigestService(insightService, provider, cfg.MerchantPhone, cfg.AnalysisWindowDays)

	// Init handlers
	healthHandler := handlers.NewHealthHandler(provider)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Order Insight API",
	})

	// Middleware
	app.Use(cors.New())

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Webhook route
	app.Post("/webhooks/orders", webhookHandler.ReceiveOrder)

	// Insight routes
	app.Get("/insights/products", insightHandler.GetProductTrends)
	app.Get("/insights/customers", insightHandler.GetCustomerPatterns)
	app.Get("/insights/recommendations", insightHandler.GetRecommendations)
	app.Get("/insights/summary", insightHandler.GetSummary)

	// Daily digest scheduler
	scheduler := schedule.NewScheduler()
	if err := scheduler.AddJob("daily-digest", cfg.DigestSchedule, func() {
		if err := digestService.SendDailyDigest(); err != nil {
			log.Printf("❌ Digest job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule digest job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Printf("⏰ Digest scheduled: %s (to %s)", cfg.DigestSchedule, cfg.MerchantPhone)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ order-insight-be running at :%s", port)
	log.Fatal(app.Listen(":" + port))
}
