package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nikbrunner/linkvault/internal/model"
)

// ParseJSON reads a JSON array of bookmark records, the format lv exports and
// stores. Records keep their ids and dates; the store replaces ids that clash.
func ParseJSON(r io.Reader) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := json.NewDecoder(r).Decode(&bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}

	out := bookmarks[:0]
	for _, b := range bookmarks {
		if b.URL == "" {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
