package payload

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   string
		ok     bool
	}{
		{"plain text", Intent{Kind: KindText, Text: "hello"}, "hello", true},
		{"empty text", Intent{Kind: KindText}, "", false},

		{"website without scheme", Intent{Kind: KindWebsite, Website: "example.com"}, "https://example.com", true},
		{"website with http", Intent{Kind: KindWebsite, Website: "http://example.com"}, "http://example.com", true},
		{"website with https", Intent{Kind: KindWebsite, Website: "https://example.com"}, "https://example.com", true},
		{"empty website", Intent{Kind: KindWebsite}, "", false},

		{"email", Intent{Kind: KindEmail, Email: "x@y.com"}, "mailto:x@y.com", true},
		{"empty email", Intent{Kind: KindEmail}, "", false},

		{"phone", Intent{Kind: KindPhone, Phone: "+15551234567"}, "tel:+15551234567", true},
		{"empty phone", Intent{Kind: KindPhone}, "", false},

		{"wifi", Intent{Kind: KindWifi, SSID: "home", Password: "secret"}, "WIFI:T:WPA;S:home;P:secret;;", true},
		{"wifi missing password", Intent{Kind: KindWifi, SSID: "home"}, "", false},
		{"wifi missing ssid", Intent{Kind: KindWifi, Password: "secret"}, "", false},

		{
			"vcard full",
			Intent{Kind: KindVCard, Name: "Ada Lovelace", CardPhone: "+44123", CardEmail: "ada@example.com"},
			"\nBEGIN:VCARD\nVERSION:3.0\nFN:Ada Lovelace\nTEL:+44123\nEMAIL:ada@example.com\nEND:VCARD\n",
			true,
		},
		{
			"vcard embeds empty contact fields",
			Intent{Kind: KindVCard, Name: "Ada"},
			"\nBEGIN:VCARD\nVERSION:3.0\nFN:Ada\nTEL:\nEMAIL:\nEND:VCARD\n",
			true,
		},
		{"vcard without name", Intent{Kind: KindVCard, CardPhone: "+44123"}, "", false},

		{"file", Intent{Kind: KindFile, FileURL: "http://host/uploads/doc.pdf"}, "http://host/uploads/doc.pdf", true},
		{"file without url", Intent{Kind: KindFile}, "", false},

		{"unknown kind", Intent{Kind: "bogus", Text: "x"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Build(tt.intent)
			if ok != tt.ok {
				t.Fatalf("Build(%+v) ok = %v, want %v", tt.intent, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("Build(%+v) = %q, want %q", tt.intent, got, tt.want)
			}
		})
	}
}

// For any non-empty website lacking an http prefix the payload starts with
// https://; anything already carrying the prefix passes through unchanged.
func TestBuild_WebsiteScheme_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("bare hosts gain the https scheme", prop.ForAll(
		func(host string) bool {
			got, ok := Build(Intent{Kind: KindWebsite, Website: host})
			return ok && got == "https://"+host
		},
		gen.AlphaString().SuchThat(func(s string) bool {
			return s != "" && !strings.HasPrefix(s, "http")
		}),
	))

	properties.Property("urls with a scheme pass through", prop.ForAll(
		func(rest string) bool {
			url := "http://" + rest
			got, ok := Build(Intent{Kind: KindWebsite, Website: url})
			return ok && got == url
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// A wifi payload exists iff both ssid and password are non-empty, and always
// matches the fixed WPA template exactly.
func TestBuild_Wifi_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("emitted iff both fields present, exact format", prop.ForAll(
		func(ssid, password string) bool {
			got, ok := Build(Intent{Kind: KindWifi, SSID: ssid, Password: password})
			if ssid == "" || password == "" {
				return !ok && got == ""
			}
			return ok && got == "WIFI:T:WPA;S:"+ssid+";P:"+password+";;"
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
