// Package classify assigns a semantic content type to a decoded QR payload.
package classify

import "strings"

// Kind is the content-type tag of a payload
type Kind string

const (
	Text     Kind = "text"
	Email    Kind = "email"
	Phone    Kind = "phone"
	YouTube  Kind = "youtube"
	WhatsApp Kind = "whatsapp"
	Maps     Kind = "maps"
	Image    Kind = "image"
	PDF      Kind = "pdf"
	URL      Kind = "url"
)

type rule struct {
	match func(data, lower string) bool
	kind  Kind
}

// Evaluated in order, first match wins. The ordering is deliberate: specific
// substring matches (youtube, whatsapp, maps) take precedence over the generic
// http prefix, so a YouTube link classifies as youtube rather than url.
var rules = []rule{
	{func(d, _ string) bool { return strings.HasPrefix(d, "mailto:") }, Email},
	{func(d, _ string) bool { return strings.HasPrefix(d, "tel:") }, Phone},
	{func(d, _ string) bool { return strings.Contains(d, "youtube.com") || strings.Contains(d, "youtu.be") }, YouTube},
	{func(d, _ string) bool { return strings.Contains(d, "wa.me") || strings.Contains(d, "whatsapp.com") }, WhatsApp},
	{func(d, _ string) bool { return strings.Contains(d, "maps.google") }, Maps},
	{func(_, l string) bool {
		return strings.HasSuffix(l, ".png") || strings.HasSuffix(l, ".jpg") || strings.HasSuffix(l, ".jpeg")
	}, Image},
	{func(_, l string) bool { return strings.HasSuffix(l, ".pdf") }, PDF},
	{func(d, _ string) bool { return strings.HasPrefix(d, "http") }, URL},
}

// Detect returns exactly one tag for any input string. Leading and trailing
// whitespace is ignored; the empty string is plain text.
func Detect(data string) Kind {
	data = strings.TrimSpace(data)
	if data == "" {
		return Text
	}

	lower := strings.ToLower(data)
	for _, r := range rules {
		if r.match(data, lower) {
			return r.kind
		}
	}
	return Text
}
