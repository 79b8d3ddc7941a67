package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"qrstudio/internal/api"
	"qrstudio/internal/config"
	"qrstudio/internal/history"
	"qrstudio/internal/metrics"
	"qrstudio/internal/store"
)

func main() {
	// Load .env file (ignore error if file doesn't exist - use system env vars)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize the artifact store (creates the bucket directories)
	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}
	log.Printf("Artifact store ready at %s", cfg.DataDir)

	// In-memory ledgers and Prometheus counters
	ledger := history.NewLedger()
	m := metrics.New()

	// Initialize handlers
	handlers := api.NewHandlers(st, ledger, m, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "QR Studio API",
		ServerHeader: "qrstudio",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// Register health endpoints before other routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	app.Get("/ready", func(c *fiber.Ctx) error {
		// The store is the only external dependency: verify it is writable
		probe := filepath.Join(cfg.DataDir, ".ready")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			return c.Status(503).JSON(fiber.Map{
				"status": "not_ready",
				"error":  err.Error(),
			})
		}
		os.Remove(probe)

		return c.JSON(fiber.Map{
			"status": "ready",
			"checks": fiber.Map{
				"store": fiber.Map{
					"status": "healthy",
					"path":   cfg.DataDir,
				},
			},
		})
	})

	// Register all API routes
	api.RegisterRoutes(app, handlers, st, cfg)

	// Start server in goroutine
	go func() {
		addr := cfg.Host + ":" + cfg.Port
		log.Printf("Starting QR Studio API on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	fmt.Println("Server exiting")
}
