package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/tui/layout"
)

const (
	maxNameLen = 32
	maxURLLen  = 48
	dateLayout = "2006-01-02"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderTable lays records out as ID | NAME | URL | CATEGORY | ADDED.
func renderTable(records []model.Bookmark) string {
	text := layout.TextConfig{Ellipsis: "..."}

	rows := make([][]string, 0, len(records))
	for _, b := range records {
		name, _ := layout.TruncateText(b.Name, maxNameLen, text)
		url, _ := layout.TruncateText(b.URL, maxURLLen, text)
		rows = append(rows, []string{
			b.ID,
			name,
			url,
			model.CategoryLabel(b.Category),
			b.DateAdded.Local().Format(dateLayout),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "NAME", "URL", "CATEGORY", "ADDED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return cellStyle.Foreground(lipgloss.Color("39"))
			}
			return cellStyle
		}).
		String()
}

// suggestID returns the existing id closest to id, when within edit
// distance 3.
func suggestID(id string, records []model.Bookmark) string {
	best := ""
	bestDistance := len(id) + 1
	for _, b := range records {
		if d := levenshteinDistance(id, b.ID); d < bestDistance && d <= 3 {
			bestDistance = d
			best = b.ID
		}
	}
	return best
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
