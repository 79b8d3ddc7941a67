package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"qrstudio/internal/config"
	"qrstudio/internal/history"
	"qrstudio/internal/metrics"
	"qrstudio/internal/services"
	"qrstudio/internal/store"
)

// Handlers holds all API handlers
type Handlers struct {
	Code      *CodeHandler
	Scan      *ScanHandler
	Dashboard *DashboardHandler
}

// NewHandlers creates all handlers with dependencies
func NewHandlers(st *store.Store, ledger *history.Ledger, m *metrics.Metrics, cfg *config.Config) *Handlers {
	qrService := services.NewQRService(st, ledger, m, cfg)
	scanService := services.NewScanService(ledger, m)

	return &Handlers{
		Code:      NewCodeHandler(st, cfg, qrService),
		Scan:      NewScanHandler(st, scanService),
		Dashboard: NewDashboardHandler(ledger),
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, st *store.Store, cfg *config.Config) {
	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "QR Studio API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Uploaded files are served publicly; file-intent payloads point here
	app.Static("/uploads", st.UploadsDir())

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	v1 := app.Group("/v1")
	v1.Use(SessionMiddleware(cfg))

	// Generation and download
	v1.Post("/codes", handlers.Code.CreateCode)
	v1.Get("/codes/:id/download", handlers.Code.DownloadCode)

	// Scanning
	v1.Post("/scan", handlers.Scan.ScanFromImage)
	v1.Post("/scan/payload", handlers.Scan.ClassifyPayload)

	// Dashboard
	v1.Get("/dashboard", handlers.Dashboard.GetDashboard)
}
