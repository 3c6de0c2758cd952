package model

// Known categories. Categories are free-form; these are only the ones the
// UI offers by default.
const (
	CategoryPhotos = "photos"
	CategoryVideos = "videos"
	CategoryHacks  = "hacks"
	CategoryAI     = "ai"
	CategoryWeb    = "web"
	CategoryOthers = "others"
)

// FilterAll is the category filter that matches every record.
const FilterAll = "all"

// DefaultCategories returns the categories shown in the sidebar when
// configuration does not override them.
func DefaultCategories() []string {
	return []string{
		CategoryPhotos,
		CategoryVideos,
		CategoryHacks,
		CategoryAI,
		CategoryWeb,
		CategoryOthers,
	}
}

// CategoryLabel returns a display label for a category.
func CategoryLabel(category string) string {
	switch category {
	case CategoryAI:
		return "AI"
	case "":
		return "Uncategorized"
	}
	r := []rune(category)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
