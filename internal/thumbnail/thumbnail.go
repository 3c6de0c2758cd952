// Package thumbnail derives card art for bookmarks that have no custom image:
// a favicon URL, a per-domain color and an initial letter.
package thumbnail

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"golang.org/x/net/idna"

	"github.com/nikbrunner/linkvault/internal/model"
)

const (
	faviconBaseURL = "https://www.google.com/s2/favicons?domain="

	// DefaultColor is used when no domain can be derived.
	DefaultColor = "#7C3AED"

	// lighten/darken step: round(2.55 * 40)
	adjustAmount = 102
)

// Domain returns the lowercased ASCII hostname of rawURL, with
// internationalized names in punycode. Returns "" when rawURL has no valid
// host.
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host, err := idna.Lookup.ToASCII(strings.ToLower(u.Hostname()))
	if err != nil {
		return ""
	}
	return host
}

// FaviconURL returns the 64px favicon service URL for rawURL's host.
// Returns "" when rawURL has no host.
func FaviconURL(rawURL string) string {
	domain := Domain(rawURL)
	if domain == "" {
		return ""
	}
	return faviconBaseURL + domain + "&sz=64"
}

// Colors memoizes domain colors. The zero value is ready to use.
type Colors struct {
	mu    sync.Mutex
	cache map[string]string
}

// For returns the #rrggbb color for domain.
func (c *Colors) For(domain string) string {
	if domain == "" {
		return DefaultColor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if color, ok := c.cache[domain]; ok {
		return color
	}
	if c.cache == nil {
		c.cache = make(map[string]string)
	}
	color := domainColor(domain)
	c.cache[domain] = color
	return color
}

var defaultColors Colors

// ColorForURL returns the color for rawURL's domain using a shared cache.
func ColorForURL(rawURL string) string {
	return defaultColors.For(Domain(rawURL))
}

// domainColor hashes domain (h = h*31 + c over UTF-16 code units, wrapping at
// 32 bits) and uses the low three bytes as R, G, B. Colors that are too dark
// or too light for a dark background are shifted toward the middle.
func domainColor(domain string) string {
	var h uint32
	for _, unit := range utf16.Encode([]rune(domain)) {
		h = uint32(unit) + (h << 5) - h
	}

	r := int(h & 0xFF)
	g := int((h >> 8) & 0xFF)
	b := int((h >> 16) & 0xFF)

	switch sum := r + g + b; {
	case sum < 300:
		r, g, b = min(r+adjustAmount, 255), min(g+adjustAmount, 255), min(b+adjustAmount, 255)
	case sum > 600:
		r, g, b = max(r-adjustAmount, 0), max(g-adjustAmount, 0), max(b-adjustAmount, 0)
	}

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Initial returns the uppercased first letter of name, or "?" for an empty name.
func Initial(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// Card is the art shown for a bookmark.
type Card struct {
	Initial    string `json:"initial"`
	Color      string `json:"color"`
	FaviconURL string `json:"favicon"`
	ImageURL   string `json:"image,omitempty"` // custom thumbnail, when set
}

// Placeholder builds the card for b.
func Placeholder(b model.Bookmark) Card {
	card := Card{
		Initial:    Initial(b.Name),
		Color:      ColorForURL(b.URL),
		FaviconURL: FaviconURL(b.URL),
	}
	if b.HasThumbnail() {
		card.ImageURL = *b.ThumbnailURL
	}
	return card
}
