package exporter

import (
	"encoding/json"

	"github.com/nikbrunner/linkvault/internal/model"
)

// ExportJSON renders records as an indented JSON array, the same shape the
// store persists.
func ExportJSON(records []model.Bookmark) ([]byte, error) {
	if records == nil {
		records = []model.Bookmark{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
