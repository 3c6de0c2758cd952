package thumbnail_test

import (
	"regexp"
	"sync"
	"testing"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/thumbnail"
)

func TestDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://Example.COM/path?q=1", "example.com"},
		{"http://sub.example.org:8080/", "sub.example.org"},
		{"https://claude.ai", "claude.ai"},
		{"https://münchen.de/", "xn--mnchen-3ya.de"},
		{"https://MÜNCHEN.de", "xn--mnchen-3ya.de"},
		{"example.com", ""},
		{"", ""},
		{"://broken", ""},
	}

	for _, tt := range tests {
		if got := thumbnail.Domain(tt.url); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestFaviconURL(t *testing.T) {
	got := thumbnail.FaviconURL("https://github.com/nikbrunner")
	want := "https://www.google.com/s2/favicons?domain=github.com&sz=64"
	if got != want {
		t.Errorf("FaviconURL = %q, want %q", got, want)
	}

	got = thumbnail.FaviconURL("https://münchen.de/stadt")
	want = "https://www.google.com/s2/favicons?domain=xn--mnchen-3ya.de&sz=64"
	if got != want {
		t.Errorf("FaviconURL(idn) = %q, want %q", got, want)
	}

	if got := thumbnail.FaviconURL("not a url"); got != "" {
		t.Errorf("FaviconURL(invalid) = %q, want empty", got)
	}
}

func TestColorsFor_KnownValues(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"a", "#c76666"},
		{"ab", "#877266"},
		{"example.com", "#fdb620"},
		{"openai.com", "#1f838a"},
		{"google.com", "#b26ad4"},
		{"github.com", "#f6dc50"},
		{"claude.ai", "#de866f"},
		{"x.com", "#71d5ff"},
		{"", thumbnail.DefaultColor},
	}

	var c thumbnail.Colors
	for _, tt := range tests {
		if got := c.For(tt.domain); got != tt.want {
			t.Errorf("For(%q) = %s, want %s", tt.domain, got, tt.want)
		}
	}
}

func TestColorsFor_DeterministicAndCached(t *testing.T) {
	var c thumbnail.Colors
	first := c.For("news.ycombinator.com")
	if second := c.For("news.ycombinator.com"); second != first {
		t.Errorf("color changed between calls: %s vs %s", first, second)
	}

	var other thumbnail.Colors
	if got := other.For("news.ycombinator.com"); got != first {
		t.Errorf("separate caches disagree: %s vs %s", got, first)
	}

	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, d := range []string{"a.b", "localhost", "xn--mnchen-3ya.de", "例え.jp"} {
		if got := c.For(d); !hex.MatchString(got) {
			t.Errorf("For(%q) = %q is not #rrggbb", d, got)
		}
	}
}

func TestColorsFor_Concurrent(t *testing.T) {
	var c thumbnail.Colors
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.For("example.com"); got != "#fdb620" {
				t.Errorf("For = %s", got)
			}
		}()
	}
	wg.Wait()
}

func TestColorForURL(t *testing.T) {
	if got := thumbnail.ColorForURL("https://openai.com/research"); got != "#1f838a" {
		t.Errorf("ColorForURL = %s", got)
	}
	if got := thumbnail.ColorForURL("https://münchen.de"); got != "#8266be" {
		t.Errorf("ColorForURL(idn) = %s, want #8266be", got)
	}
	if got := thumbnail.ColorForURL("garbage"); got != thumbnail.DefaultColor {
		t.Errorf("ColorForURL(garbage) = %s, want default", got)
	}
}

func TestInitial(t *testing.T) {
	tests := map[string]string{
		"github":    "G",
		"Go":        "G",
		"élan":      "É",
		"1Password": "1",
		"":          "?",
	}
	for name, want := range tests {
		if got := thumbnail.Initial(name); got != want {
			t.Errorf("Initial(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	b := model.Bookmark{Name: "claude", URL: "https://claude.ai"}
	card := thumbnail.Placeholder(b)

	if card.Initial != "C" || card.Color != "#de866f" {
		t.Errorf("unexpected card: %+v", card)
	}
	if card.FaviconURL != "https://www.google.com/s2/favicons?domain=claude.ai&sz=64" {
		t.Errorf("FaviconURL = %q", card.FaviconURL)
	}
	if card.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", card.ImageURL)
	}

	img := "https://images.example/x.jpg"
	b.ThumbnailURL = &img
	if got := thumbnail.Placeholder(b).ImageURL; got != img {
		t.Errorf("ImageURL = %q, want %q", got, img)
	}
}
