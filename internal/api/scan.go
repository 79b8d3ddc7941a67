package api

import (
	"bytes"
	"image"
	"io"

	"github.com/gofiber/fiber/v2"

	"qrstudio/internal/services"
	"qrstudio/internal/store"
)

// ScanHandler handles QR decode and classification endpoints
type ScanHandler struct {
	store *store.Store
	scan  *services.ScanService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(st *store.Store, scan *services.ScanService) *ScanHandler {
	return &ScanHandler{
		store: st,
		scan:  scan,
	}
}

// ScanFromImage handles POST /v1/scan - decodes a QR code from an uploaded
// image. "No QR detected" is a 200 with found=false, not an error.
func (h *ScanHandler) ScanFromImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "image file is required",
		})
	}
	if !store.Allowed(fh.Filename) {
		return c.Status(400).JSON(fiber.Map{
			"error": "unsupported file type",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to read upload",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to read upload",
		})
	}

	// The scanned image is kept in the uploads bucket like any other upload
	if _, err := h.store.SaveUpload(fh.Filename, bytes.NewReader(data)); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to store upload",
		})
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to decode image",
		})
	}

	result, err := h.scan.DecodeImage(sessionID(c), img)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to scan image",
		})
	}

	return c.JSON(result)
}

// ClassifyRequest is the body of the pre-decoded payload path
type ClassifyRequest struct {
	Data string `json:"data"`
}

// ClassifyPayload handles POST /v1/scan/payload - the camera path, where the
// client already extracted the payload and only classification remains
func (h *ScanHandler) ClassifyPayload(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result := h.scan.Classify(sessionID(c), req.Data)
	return c.JSON(fiber.Map{
		"data": result.Payload,
		"type": result.Type,
	})
}
