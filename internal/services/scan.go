package services

import (
	"fmt"
	"image"
	"time"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"

	"qrstudio/internal/classify"
	"qrstudio/internal/history"
	"qrstudio/internal/metrics"
)

// NoCodeDetected is the sentinel payload returned when an image contains no
// QR pattern. It is a normal negative result, not an error.
const NoCodeDetected = "No QR detected"

// ScanResult is the outcome of a decode or classify operation
type ScanResult struct {
	Payload string        `json:"data"`
	Type    classify.Kind `json:"type"`
	Found   bool          `json:"found"`
}

// ScanService handles QR decoding and payload classification
type ScanService struct {
	ledger  *history.Ledger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewScanService creates a new scan service
func NewScanService(ledger *history.Ledger, m *metrics.Metrics) *ScanService {
	return &ScanService{
		ledger:  ledger,
		metrics: m,
		now:     time.Now,
	}
}

// DecodeImage extracts a QR payload from a raster image. When no pattern is
// found the sentinel result is returned with type text and neither the
// counter nor the session history is touched.
func (s *ScanService) DecodeImage(sessionID string, img image.Image) (ScanResult, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ScanResult{}, fmt.Errorf("prepare bitmap: %w", err)
	}

	reader := zxqrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		if _, ok := err.(gozxing.NotFoundException); ok {
			return ScanResult{Payload: NoCodeDetected, Type: classify.Text, Found: false}, nil
		}
		return ScanResult{}, fmt.Errorf("decode image: %w", err)
	}

	return s.record(sessionID, result.GetText()), nil
}

// Classify handles the pre-decoded path: the client already extracted the
// payload (camera scan) and only classification and recording remain.
func (s *ScanService) Classify(sessionID, data string) ScanResult {
	return s.record(sessionID, data)
}

func (s *ScanService) record(sessionID, data string) ScanResult {
	kind := classify.Detect(data)
	s.ledger.AddScan(sessionID, history.ScanRecord{
		Payload:   data,
		Type:      string(kind),
		ScannedAt: s.now(),
	})
	s.metrics.IncScanned()
	return ScanResult{Payload: data, Type: kind, Found: true}
}
