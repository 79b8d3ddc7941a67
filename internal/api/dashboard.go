package api

import (
	"github.com/gofiber/fiber/v2"

	"qrstudio/internal/history"
)

// DashboardHandler handles the history/counter overview endpoint
type DashboardHandler struct {
	ledger *history.Ledger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(ledger *history.Ledger) *DashboardHandler {
	return &DashboardHandler{ledger: ledger}
}

// GetDashboard handles GET /v1/dashboard - generation history is process-wide,
// scan history is scoped to the caller's session
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"history":         h.ledger.Generations(),
		"total_generated": h.ledger.TotalGenerated(),
		"total_scans":     h.ledger.TotalScanned(),
		"scan_history":    h.ledger.Scans(sessionID(c)),
	})
}
