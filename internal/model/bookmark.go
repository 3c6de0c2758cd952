package model

import (
	"strings"
	"time"
)

// Bookmark represents a saved website.
type Bookmark struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Category     string     `json:"category"`
	DateAdded    time.Time  `json:"dateAdded"`
	DateModified *time.Time `json:"dateModified,omitempty"` // nil = never updated
	ThumbnailURL *string    `json:"thumbnailUrl"`           // nil = generated placeholder
	Description  string     `json:"description,omitempty"`
}

// BookmarkInput holds the caller-supplied fields for creating or updating a Bookmark.
type BookmarkInput struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	Category     string  `json:"category"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// NewBookmark builds a Bookmark from input with the given id and creation time.
// Name is trimmed and URL normalized.
func NewBookmark(id string, input BookmarkInput, addedAt time.Time) Bookmark {
	b := Bookmark{
		ID:        id,
		DateAdded: addedAt,
	}
	b.apply(input)
	return b
}

// Updated returns a copy of b with input applied and DateModified stamped.
// ID and DateAdded are preserved.
func (b Bookmark) Updated(input BookmarkInput, modifiedAt time.Time) Bookmark {
	b.apply(input)
	b.DateModified = &modifiedAt
	return b
}

func (b *Bookmark) apply(input BookmarkInput) {
	b.Name = strings.TrimSpace(input.Name)
	b.URL = NormalizeURL(input.URL)
	b.Category = input.Category
	b.ThumbnailURL = cloneString(input.ThumbnailURL)
	b.Description = input.Description
}

// Input returns the mutable fields of b as a BookmarkInput.
func (b Bookmark) Input() BookmarkInput {
	return BookmarkInput{
		Name:         b.Name,
		URL:          b.URL,
		Category:     b.Category,
		ThumbnailURL: cloneString(b.ThumbnailURL),
		Description:  b.Description,
	}
}

// Clone returns a deep copy of b so callers cannot alias pointer fields.
func (b Bookmark) Clone() Bookmark {
	if b.DateModified != nil {
		t := *b.DateModified
		b.DateModified = &t
	}
	b.ThumbnailURL = cloneString(b.ThumbnailURL)
	return b
}

// HasThumbnail reports whether the bookmark carries custom card art.
func (b Bookmark) HasThumbnail() bool {
	return b.ThumbnailURL != nil && *b.ThumbnailURL != ""
}

// NormalizeURL trims rawURL and prefixes https:// unless it already
// starts with http:// or https://.
func NormalizeURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
