package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/linkvault/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int // byte offsets into Haystack(Bookmark)
	Score          int
}

// NameIndexes returns the matched offsets that fall inside the bookmark name,
// for highlighting.
func (r Result) NameIndexes() []int {
	var out []int
	for _, i := range r.MatchedIndexes {
		if i < len(r.Bookmark.Name) {
			out = append(out, i)
		}
	}
	return out
}

// Haystack is the text a bookmark is matched against: its name, then its URL
// without the scheme.
func Haystack(b *model.Bookmark) string {
	u := strings.TrimPrefix(strings.TrimPrefix(b.URL, "https://"), "http://")
	return b.Name + " " + u
}

// bookmarkSource implements fuzzy.Source over a bookmark slice.
type bookmarkSource []*model.Bookmark

func (s bookmarkSource) String(i int) string {
	return Haystack(s[i])
}

func (s bookmarkSource) Len() int {
	return len(s)
}

// Fuzzy searches records by name and URL using fuzzy matching.
// Returns results sorted by match score (best first). The results point at
// copies, so records can be modified afterwards.
func Fuzzy(records []model.Bookmark, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	copies := model.Clone(records)
	source := make(bookmarkSource, len(copies))
	for i := range copies {
		source[i] = &copies[i]
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       source[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
