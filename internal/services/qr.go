package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"time"

	"github.com/aaronarduino/goqrsvg"
	svg "github.com/ajstarks/svgo"
	"github.com/boombuler/barcode/qr"
	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"

	"qrstudio/internal/config"
	"qrstudio/internal/history"
	"qrstudio/internal/metrics"
	"qrstudio/internal/store"
)

// ErrBadOptions marks render options the caller got wrong (bad color syntax);
// handlers turn it into a 400 instead of a generic server error
var ErrBadOptions = errors.New("invalid render options")

// RenderOptions carries the per-request rendering parameters
type RenderOptions struct {
	Foreground string // hex color, e.g. "#000000"
	Background string // hex color, e.g. "#ffffff"
	Logo       image.Image
}

// QRService handles QR code generation
type QRService struct {
	store   *store.Store
	ledger  *history.Ledger
	metrics *metrics.Metrics
	cfg     *config.Config
	now     func() time.Time
}

// NewQRService creates a new QR service
func NewQRService(st *store.Store, ledger *history.Ledger, m *metrics.Metrics, cfg *config.Config) *QRService {
	return &QRService{
		store:   st,
		ledger:  ledger,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Generate encodes the payload into a PNG/SVG artifact pair sharing one
// timestamp-derived ID, records the generation, and returns the ID.
//
// The raster is encoded at the highest error-correction level so a centered
// logo overlay leaves enough redundancy to stay scannable; the logo simply
// overwrites the modules beneath it.
func (s *QRService) Generate(payload string, opts RenderOptions) (string, error) {
	fg, err := parseHexColor(opts.Foreground, color.Black)
	if err != nil {
		return "", fmt.Errorf("fill color: %w", err)
	}
	bg, err := parseHexColor(opts.Background, color.White)
	if err != nil {
		return "", fmt.Errorf("back color: %w", err)
	}

	code, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	code.ForegroundColor = fg
	code.BackgroundColor = bg

	img := code.Image(s.cfg.QRSize)
	if opts.Logo != nil {
		img = overlayLogo(img, opts.Logo)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	id := s.now().Format("20060102150405")
	if err := s.store.WriteCode(id+".png", buf.Bytes()); err != nil {
		return "", err
	}

	// The pairing invariant requires both halves or neither: if the vector
	// half cannot be produced, the raster is rolled back before the error
	// propagates.
	svgData, err := renderSVG(payload, s.cfg.SVGBlockSize)
	if err != nil {
		s.store.RemoveCode(id + ".png")
		return "", err
	}
	if err := s.store.WriteCode(id+".svg", svgData); err != nil {
		s.store.RemoveCode(id + ".png")
		return "", err
	}

	s.ledger.AddGeneration(history.GenerationRecord{
		ID:        id,
		Payload:   payload,
		CreatedAt: s.now(),
	})
	s.metrics.IncGenerated()

	return id, nil
}

// renderSVG encodes the payload as an SVG vector image
func renderSVG(payload string, blockSize int) ([]byte, error) {
	code, err := qr.Encode(payload, qr.H, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode svg payload: %w", err)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	qs := goqrsvg.NewQrSVG(code, blockSize)
	qs.StartQrSVG(canvas)
	if err := qs.WriteQrSVG(canvas); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	canvas.End()

	return buf.Bytes(), nil
}

// overlayLogo scales the logo to a quarter of the QR image's width and height
// and pastes it centered over the code
func overlayLogo(base image.Image, logo image.Image) image.Image {
	b := base.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, base, b.Min, draw.Src)

	w, h := b.Dx()/4, b.Dy()/4
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)

	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-h)/2
	draw.Draw(dst, image.Rect(x, y, x+w, y+h), scaled, image.Point{}, draw.Over)

	return dst
}

// parseHexColor parses "#RGB" or "#RRGGBB"; an empty string yields the default
func parseHexColor(s string, def color.Color) (color.Color, error) {
	if s == "" {
		return def, nil
	}
	if s[0] != '#' {
		return nil, fmt.Errorf("color %q: %w", s, ErrBadOptions)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("color %q: %w", s, ErrBadOptions)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, ErrBadOptions)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
