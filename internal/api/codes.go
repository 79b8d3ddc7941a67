package api

import (
	"bytes"
	"errors"
	"image"
	"io"
	"mime/multipart"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gofiber/fiber/v2"

	"qrstudio/internal/config"
	"qrstudio/internal/payload"
	"qrstudio/internal/services"
	"qrstudio/internal/store"
)

// CodeHandler handles QR generation and artifact download endpoints
type CodeHandler struct {
	store *store.Store
	cfg   *config.Config
	qr    *services.QRService
}

// NewCodeHandler creates a new code handler
func NewCodeHandler(st *store.Store, cfg *config.Config, qr *services.QRService) *CodeHandler {
	return &CodeHandler{
		store: st,
		cfg:   cfg,
		qr:    qr,
	}
}

// CreateCode handles POST /v1/codes - builds the payload from the submitted
// intent and renders the artifact pair
func (h *CodeHandler) CreateCode(c *fiber.Ctx) error {
	intent := payload.Intent{
		Kind:      payload.Kind(c.FormValue("qr_type")),
		Text:      c.FormValue("text"),
		Website:   c.FormValue("website"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		SSID:      c.FormValue("ssid"),
		Password:  c.FormValue("password"),
		Name:      c.FormValue("name"),
		CardPhone: c.FormValue("vphone"),
		CardEmail: c.FormValue("vemail"),
	}

	// File intent: the payload is the public URL of the stored upload
	if intent.Kind == payload.KindFile {
		if fh, err := c.FormFile("file"); err == nil && store.Allowed(fh.Filename) {
			stored, err := h.saveUpload(fh)
			if err != nil {
				return c.Status(500).JSON(fiber.Map{
					"error": "failed to store upload",
				})
			}
			intent.FileURL = h.cfg.BaseURL + "/uploads/" + stored
		}
	}

	data, ok := payload.Build(intent)
	if !ok {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	opts := services.RenderOptions{
		Foreground: c.FormValue("fill_color", "#000000"),
		Background: c.FormValue("back_color", "#ffffff"),
	}

	// A logo with a disallowed extension is skipped, not rejected
	if fh, err := c.FormFile("logo"); err == nil && store.Allowed(fh.Filename) {
		logo, err := h.loadLogo(fh)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"error": "failed to read logo",
			})
		}
		opts.Logo = logo
	}

	id, err := h.qr.Generate(data, opts)
	if err != nil {
		if errors.Is(err, services.ErrBadOptions) {
			return c.Status(400).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to generate QR code",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":      id,
		"payload": data,
		"png_url": "/v1/codes/" + id + "/download?format=png",
		"svg_url": "/v1/codes/" + id + "/download?format=svg",
		"zip_url": "/v1/codes/" + id + "/download?format=zip",
	})
}

// DownloadCode handles GET /v1/codes/:id/download - streams one artifact or
// the zipped pair as an attachment
func (h *CodeHandler) DownloadCode(c *fiber.Ctx) error {
	id := c.Params("id")
	format := c.Query("format", "png")

	var (
		data        []byte
		err         error
		contentType string
	)

	switch format {
	case "png":
		data, err = h.store.ReadCode(id + ".png")
		contentType = "image/png"
	case "svg":
		data, err = h.store.ReadCode(id + ".svg")
		contentType = "image/svg+xml"
	case "zip":
		data, err = h.store.ZipCodes(id)
		contentType = "application/zip"
	default:
		return c.Status(400).JSON(fiber.Map{
			"error": "unsupported format",
		})
	}

	if errors.Is(err, store.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{
			"error": "artifact not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to read artifact",
		})
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", `attachment; filename="`+id+"."+format+`"`)
	return c.Send(data)
}

// saveUpload stores an allowed upload and returns its stored name
func (h *CodeHandler) saveUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.store.SaveUpload(fh.Filename, f)
}

// loadLogo stores the logo upload and decodes it for overlay
func (h *CodeHandler) loadLogo(fh *multipart.FileHeader) (image.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if _, err := h.store.SaveLogo(fh.Filename, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	logo, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return logo, nil
}
