package classify

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		data string
		want Kind
	}{
		{"", Text},
		{"   ", Text},
		{"hello world", Text},
		{"ftp://example.com", Text},

		{"mailto:a@b.com", Email},
		{"tel:+15551234567", Phone},

		{"https://youtu.be/abc", YouTube},
		{"https://www.youtube.com/watch?v=abc", YouTube},
		{"https://wa.me/15551234567", WhatsApp},
		{"https://chat.whatsapp.com/invite", WhatsApp},
		{"https://maps.google.com/?q=berlin", Maps},

		{"photo.PNG", Image},
		{"scan.jpeg", Image},
		{"shot.jpg", Image},
		{"report.PDF", PDF},
		{"report.pdf", PDF},

		{"https://example.com", URL},
		{"http://example.com", URL},
		{"  https://example.com  ", URL},

		// Earlier rules beat the generic http prefix
		{"https://example.com/gallery/pic.png", Image},
		{"https://example.com/docs/manual.pdf", PDF},
		{"https://youtu.be/clip.png", YouTube},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Fatalf("Detect(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

// Detect is a total, deterministic function: any string classifies to exactly
// one known tag, and the same string always classifies the same way.
func TestDetect_Total_Property(t *testing.T) {
	known := map[Kind]bool{
		Text: true, Email: true, Phone: true, YouTube: true, WhatsApp: true,
		Maps: true, Image: true, PDF: true, URL: true,
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("always one known tag, stable across calls", prop.ForAll(
		func(s string) bool {
			first := Detect(s)
			return known[first] && Detect(s) == first
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
