// Package payload turns structured user intent into the canonical string
// encoded into a QR code.
package payload

import (
	"fmt"
	"strings"
)

// Kind discriminates the intent variants
type Kind string

const (
	KindText    Kind = "text"
	KindWebsite Kind = "website"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindWifi    Kind = "wifi"
	KindVCard   Kind = "vcard"
	KindFile    Kind = "file"
)

// Intent is a structured description of what the user wants encoded
type Intent struct {
	Kind Kind

	// KindText
	Text string

	// KindWebsite
	Website string

	// KindEmail / KindPhone
	Email string
	Phone string

	// KindWifi
	SSID     string
	Password string

	// KindVCard
	Name      string
	CardPhone string
	CardEmail string

	// KindFile: absolute URL built by the caller from the stored upload
	FileURL string
}

// Build converts an intent into the canonical payload string. The second
// return value is false when required fields are missing or empty; that is a
// normal outcome, not an error, and the caller rejects the request as invalid
// input.
func Build(in Intent) (string, bool) {
	switch in.Kind {
	case KindText:
		if in.Text == "" {
			return "", false
		}
		return in.Text, true

	case KindWebsite:
		if in.Website == "" {
			return "", false
		}
		// Only prepend a scheme when none is present
		if !strings.HasPrefix(in.Website, "http") {
			return "https://" + in.Website, true
		}
		return in.Website, true

	case KindEmail:
		if in.Email == "" {
			return "", false
		}
		return "mailto:" + in.Email, true

	case KindPhone:
		if in.Phone == "" {
			return "", false
		}
		return "tel:" + in.Phone, true

	case KindWifi:
		// Both fields are required; security type is fixed to WPA
		if in.SSID == "" || in.Password == "" {
			return "", false
		}
		return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", in.SSID, in.Password), true

	case KindVCard:
		if in.Name == "" {
			return "", false
		}
		// TEL and EMAIL are embedded verbatim even when empty
		return fmt.Sprintf(
			"\nBEGIN:VCARD\nVERSION:3.0\nFN:%s\nTEL:%s\nEMAIL:%s\nEND:VCARD\n",
			in.Name, in.CardPhone, in.CardEmail,
		), true

	case KindFile:
		if in.FileURL == "" {
			return "", false
		}
		return in.FileURL, true
	}

	return "", false
}
