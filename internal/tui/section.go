package tui

import "github.com/nikbrunner/linkvault/internal/model"

// SectionKind distinguishes the sidebar entries.
type SectionKind int

const (
	SectionAll SectionKind = iota
	SectionRecent
	SectionCategory
)

// Section is one sidebar entry.
type Section struct {
	Kind     SectionKind
	Category string // set for SectionCategory
}

// Title returns a display title for the section.
func (s Section) Title() string {
	switch s.Kind {
	case SectionAll:
		return "All Websites"
	case SectionRecent:
		return "Recently Added"
	default:
		return model.CategoryLabel(s.Category)
	}
}

// buildSections returns All, Recent, then one section per category: the
// configured ones first, followed by any others found in the data.
func buildSections(configured, present []string) []Section {
	sections := []Section{{Kind: SectionAll}, {Kind: SectionRecent}}
	for _, c := range mergeCategories(configured, present) {
		sections = append(sections, Section{Kind: SectionCategory, Category: c})
	}
	return sections
}

// mergeCategories returns configured followed by the entries of present not
// already listed. Blank categories are skipped.
func mergeCategories(configured, present []string) []string {
	seen := make(map[string]bool, len(configured)+len(present))
	var out []string
	for _, list := range [][]string{configured, present} {
		for _, c := range list {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
