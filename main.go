package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mogaland-staking-service/handlers"
	"mogaland-staking-service/middleware"
	"mogaland-staking-service/models"
	"mogaland-staking-service/services"
	"mogaland-staking-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-Wallet-Address, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// The collectible mirror cache is optional: without DATABASE_URL the
	// service runs fully in-memory, which is the reference behavior.
	var db *gorm.DB
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := db.AutoMigrate(&models.CollectibleMirror{}); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
	} else {
		log.Println("⚠️  DATABASE_URL not set — collectible mirror cache disabled, running in-memory only")
	}

	cfg := services.LoadConfig()

	var contract services.NFTContract
	if client := workers.NewProviderClient(); client != nil {
		contract = client
	}

	stakingService := services.NewStakingService(cfg, contract, db)

	stakingService.StartSyncScheduler(cfg.SyncInterval)

	handlers.SetupStakingRoutes(app, stakingService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Printf("✅ Wallet re-sync scheduler running (every %s)", cfg.SyncInterval)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)
	log.Printf("⛽ Gas fee: %g USDC per action | Treasury seed: %.0f USDC", cfg.GasFeeUSDC, cfg.TreasuryInitial)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
