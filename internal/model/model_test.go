package model_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/linkvault/internal/model"
)

// Helper functions for pointers
func stringPtr(s string) *string { return &s }

func sampleRecords() []model.Bookmark {
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	return []model.Bookmark{
		{ID: "b1", Name: "mantine", URL: "https://mantine.dev/", Category: "web", DateAdded: base.Add(2 * time.Hour)},
		{ID: "b2", Name: "OpenAI", URL: "https://openai.com", Category: "ai", DateAdded: base},
		{ID: "b3", Name: "Äpfel Fotos", URL: "https://apfel.example", Category: "photos", DateAdded: base.Add(3 * time.Hour)},
		{ID: "b4", Name: "Claude", URL: "https://claude.ai", Category: "ai", DateAdded: base.Add(time.Hour)},
	}
}

func ids(records []model.Bookmark) []string {
	out := make([]string, len(records))
	for i, b := range records {
		out[i] = b.ID
	}
	return out
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare domain", "example.com", "https://example.com"},
		{"surrounding whitespace", "  example.com/path ", "https://example.com/path"},
		{"https kept", "https://example.com", "https://example.com"},
		{"http kept", "http://example.com", "http://example.com"},
		{"other scheme prefixed", "ftp://example.com", "https://ftp://example.com"},
		{"empty", "", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.NormalizeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewBookmark_TrimsAndNormalizes(t *testing.T) {
	added := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := model.NewBookmark("id1", model.BookmarkInput{
		Name:     "  Foo ",
		URL:      "example.com",
		Category: "ai",
	}, added)

	if b.Name != "Foo" {
		t.Errorf("expected trimmed name 'Foo', got %q", b.Name)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected normalized URL, got %q", b.URL)
	}
	if b.ID != "id1" || !b.DateAdded.Equal(added) {
		t.Errorf("id/date not set: %+v", b)
	}
	if b.DateModified != nil {
		t.Error("new bookmark should have no DateModified")
	}
}

func TestBookmark_UpdatedPreservesIdentity(t *testing.T) {
	added := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	modified := added.Add(time.Hour)
	b := model.NewBookmark("id1", model.BookmarkInput{Name: "Foo", URL: "foo.com", Category: "web"}, added)

	u := b.Updated(model.BookmarkInput{Name: " Bar ", URL: "http://bar.com", Category: "ai", Description: "d"}, modified)

	if u.ID != "id1" || !u.DateAdded.Equal(added) {
		t.Errorf("identity changed: %+v", u)
	}
	if u.Name != "Bar" || u.URL != "http://bar.com" || u.Category != "ai" || u.Description != "d" {
		t.Errorf("fields not replaced: %+v", u)
	}
	if u.DateModified == nil || !u.DateModified.Equal(modified) {
		t.Errorf("DateModified not stamped: %v", u.DateModified)
	}
	if b.Name != "Foo" {
		t.Error("Updated must not mutate the receiver")
	}
}

func TestBookmark_JSONFieldNames(t *testing.T) {
	b := model.Bookmark{
		ID:        "b1",
		Name:      "Noticons",
		URL:       "https://www.noticons.com/",
		Category:  "web",
		DateAdded: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	s := string(data)

	for _, want := range []string{`"id":"b1"`, `"name":"Noticons"`, `"dateAdded":"2025-01-15T10:30:00Z"`, `"thumbnailUrl":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, "dateModified") {
		t.Errorf("dateModified should be omitted until first update: %s", s)
	}
}

func TestBookmark_DecodesBrowserPayload(t *testing.T) {
	payload := `{"id":"lx2k9a3bq8","name":"Chakra UI","url":"https://chakra-ui.com/","category":"web",
		"dateAdded":"2024-05-01T09:15:30.123Z","thumbnailUrl":"https://images.example/x.jpeg"}`

	var b model.Bookmark
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if b.ThumbnailURL == nil || *b.ThumbnailURL != "https://images.example/x.jpeg" {
		t.Errorf("thumbnailUrl not decoded: %v", b.ThumbnailURL)
	}
	if b.DateAdded.Nanosecond() != 123000000 {
		t.Errorf("millisecond precision lost: %v", b.DateAdded)
	}
}

func TestBookmark_CloneDoesNotAlias(t *testing.T) {
	b := model.Bookmark{ID: "b1", ThumbnailURL: stringPtr("a")}
	c := b.Clone()
	*c.ThumbnailURL = "b"
	if *b.ThumbnailURL != "a" {
		t.Error("Clone aliased ThumbnailURL")
	}
}

func TestSearch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", []string{"b1", "b2", "b3", "b4"}},
		{"whitespace returns all", "   ", []string{"b1", "b2", "b3", "b4"}},
		{"name case-insensitive", "OPENai", []string{"b2"}},
		{"url match", ".ai", []string{"b4"}},
		{"trimmed query", "  claude ", []string{"b4"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(model.Search(records, tt.query))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	records := sampleRecords()

	all := model.FilterByCategory(records, model.FilterAll)
	if &all[0] != &records[0] {
		t.Error("filter 'all' should return the input unchanged")
	}

	ai := model.FilterByCategory(records, "ai")
	if got := strings.Join(ids(ai), ","); got != "b2,b4" {
		t.Errorf("expected b2,b4, got %s", got)
	}

	if got := model.FilterByCategory(records, "unknown-tag"); len(got) != 0 {
		t.Errorf("expected no records for unknown category, got %d", len(got))
	}
}

func TestSortBy(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		criterion model.SortCriterion
		want      string
	}{
		{model.SortNameAsc, "b3,b4,b1,b2"}, // Äpfel, Claude, mantine, OpenAI
		{model.SortNameDesc, "b2,b1,b4,b3"},
		{model.SortDateNew, "b3,b1,b4,b2"},
		{model.SortDateOld, "b2,b4,b1,b3"},
		{model.SortDefault, "b1,b2,b3,b4"},
		{"popularity", "b1,b2,b3,b4"},
	}

	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			got := strings.Join(ids(model.SortBy(records, tt.criterion)), ",")
			if got != tt.want {
				t.Errorf("SortBy(%q) = %s, want %s", tt.criterion, got, tt.want)
			}
		})
	}

	if got := strings.Join(ids(records), ","); got != "b1,b2,b3,b4" {
		t.Errorf("SortBy mutated its input: %s", got)
	}
}

func TestSortBy_DescIsExactReverseWithTies(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []model.Bookmark{
		{ID: "x", Name: "same", DateAdded: at},
		{ID: "y", Name: "same", DateAdded: at},
		{ID: "z", Name: "other", DateAdded: at.Add(time.Minute)},
	}

	asc := ids(model.SortBy(records, model.SortNameAsc))
	desc := ids(model.SortBy(records, model.SortNameDesc))
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("name-desc %v is not the reverse of name-asc %v", desc, asc)
		}
	}

	newest := ids(model.SortBy(records, model.SortDateNew))
	oldest := ids(model.SortBy(records, model.SortDateOld))
	for i := range newest {
		if newest[i] != oldest[len(oldest)-1-i] {
			t.Fatalf("date-old %v is not the reverse of date-new %v", oldest, newest)
		}
	}
}

func TestRecent(t *testing.T) {
	records := sampleRecords()

	if got := strings.Join(ids(model.Recent(records, 2)), ","); got != "b3,b1" {
		t.Errorf("expected b3,b1, got %s", got)
	}
	if got := len(model.Recent(records, 10)); got != 4 {
		t.Errorf("expected all 4 records under limit, got %d", got)
	}
}

func TestCategories(t *testing.T) {
	got := strings.Join(model.Categories(sampleRecords()), ",")
	if got != "web,ai,photos" {
		t.Errorf("expected first-seen order web,ai,photos, got %s", got)
	}
}

func TestHasURL(t *testing.T) {
	records := sampleRecords()
	if !model.HasURL(records, "openai.com") {
		t.Error("expected normalized URL to match")
	}
	if model.HasURL(records, "https://example.org") {
		t.Error("unexpected match")
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := model.GenerateID()
		if len(id) != 16 {
			t.Fatalf("expected 16 character id, got %q", id)
		}
		if strings.Trim(id, "0123456789abcdefghijklmnopqrstuvwxyz") != "" {
			t.Fatalf("id %q contains characters outside base36", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestIDScheme_Generator(t *testing.T) {
	if id := model.IDSchemeUUID.Generator()(); len(id) != 36 {
		t.Errorf("uuid scheme produced %q", id)
	}
	if id := model.IDScheme("").Generator()(); len(id) != 16 {
		t.Errorf("default scheme produced %q", id)
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[string]string{
		"ai":     "AI",
		"web":    "Web",
		"":       "Uncategorized",
		"Custom": "Custom",
	}
	for in, want := range tests {
		if got := model.CategoryLabel(in); got != want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in      string
		want    model.SortCriterion
		wantErr bool
	}{
		{"", model.SortDefault, false},
		{"default", model.SortDefault, false},
		{"name-asc", model.SortNameAsc, false},
		{" Date-Old ", model.SortDateOld, false},
		{"popularity", model.SortDefault, true},
	}

	for _, tt := range tests {
		got, err := model.ParseSort(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSort(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
