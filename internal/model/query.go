package model

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCriterion selects an ordering for SortBy.
type SortCriterion string

const (
	SortDefault  SortCriterion = ""
	SortNameAsc  SortCriterion = "name-asc"
	SortNameDesc SortCriterion = "name-desc"
	SortDateNew  SortCriterion = "date-new"
	SortDateOld  SortCriterion = "date-old"
)

// SortCriteria lists the criteria in the order the UI cycles through them.
var SortCriteria = []SortCriterion{SortDefault, SortNameAsc, SortNameDesc, SortDateNew, SortDateOld}

// Label returns a short display label.
func (s SortCriterion) Label() string {
	switch s {
	case SortNameAsc:
		return "A-Z"
	case SortNameDesc:
		return "Z-A"
	case SortDateNew:
		return "newest"
	case SortDateOld:
		return "oldest"
	default:
		return "default"
	}
}

// ParseSort maps a criterion name to a SortCriterion. "" and "default" yield
// SortDefault.
func ParseSort(name string) (SortCriterion, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return SortDefault, nil
	}
	for _, c := range SortCriteria {
		if string(c) == name {
			return c, nil
		}
	}
	return SortDefault, fmt.Errorf("unknown sort %q", name)
}

// Clone copies a slice of bookmarks, including pointer fields.
func Clone(records []Bookmark) []Bookmark {
	out := make([]Bookmark, len(records))
	for i, b := range records {
		out[i] = b.Clone()
	}
	return out
}

// FindByID returns the index of the bookmark with id, or -1.
func FindByID(records []Bookmark, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

// HasURL reports whether any record has the given URL after normalization.
func HasURL(records []Bookmark, rawURL string) bool {
	u := NormalizeURL(rawURL)
	for _, b := range records {
		if b.URL == u {
			return true
		}
	}
	return false
}

// Search returns records whose lowercased name or URL contains the trimmed,
// lowercased query. An empty query returns a copy of all records.
func Search(records []Bookmark, query string) []Bookmark {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Clone(records)
	}

	result := []Bookmark{}
	for _, b := range records {
		if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.URL), q) {
			result = append(result, b.Clone())
		}
	}
	return result
}

// ByCategory returns records whose category equals category exactly,
// preserving order.
func ByCategory(records []Bookmark, category string) []Bookmark {
	result := []Bookmark{}
	for _, b := range records {
		if b.Category == category {
			result = append(result, b.Clone())
		}
	}
	return result
}

// FilterByCategory returns records unchanged for FilterAll, otherwise only the
// records in that category.
func FilterByCategory(records []Bookmark, filter string) []Bookmark {
	if filter == FilterAll {
		return records
	}
	return ByCategory(records, filter)
}

// SortBy returns a sorted copy of records. Unknown criteria keep input order.
// The descending orders are exact reverses of their ascending counterparts.
func SortBy(records []Bookmark, criterion SortCriterion) []Bookmark {
	out := Clone(records)

	switch criterion {
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
		if criterion == SortNameDesc {
			slices.Reverse(out)
		}
	case SortDateNew, SortDateOld:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateAdded.After(out[j].DateAdded)
		})
		if criterion == SortDateOld {
			slices.Reverse(out)
		}
	}

	return out
}

// Recent returns up to limit records ordered by DateAdded, newest first.
// The input order is left untouched.
func Recent(records []Bookmark, limit int) []Bookmark {
	out := SortBy(records, SortDateNew)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories returns the distinct categories of records in first-seen order.
func Categories(records []Bookmark) []string {
	seen := make(map[string]bool)
	var result []string
	for _, b := range records {
		if seen[b.Category] {
			continue
		}
		seen[b.Category] = true
		result = append(result, b.Category)
	}
	return result
}
