package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move h:sections enter:open"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d)
	Action []Hint // Action hints (Enter, /, f, s)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		if a.focus == PaneSidebar {
			return a.getSidebarHints()
		}
		return a.getListHints()
	case ModeSearch:
		return a.getSearchModeHints()
	case ModeAdd, ModeEdit:
		return a.getFormHints()
	case ModeConfirmDelete:
		// Hints are rendered inside the modal itself.
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getGlobalHints returns the hints available regardless of focus.
func (a App) getGlobalHints() []Hint {
	hints := []Hint{
		{Key: "/", Desc: "search"},
		{Key: "s", Desc: "sort"},
	}
	if a.section().Kind == SectionAll {
		hints = append(hints, Hint{Key: "f", Desc: "filter"})
	}
	hints = append(hints,
		Hint{Key: "a", Desc: "add"},
		Hint{Key: "?", Desc: "help"},
		Hint{Key: "q", Desc: "quit"},
	)
	return hints
}

// getListHints returns hints while the card list has focus.
func (a App) getListHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h", Desc: "sections"},
		},
	}
	if a.Selected() != nil {
		hints.Action = []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "y", Desc: "copy"},
		}
		hints.Edit = []Hint{
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "del"},
		}
	}
	if a.search.Active() {
		hints.System = []Hint{{Key: "Esc", Desc: "clear search"}}
	}
	return hints
}

// getSidebarHints returns hints while the sections sidebar has focus.
func (a App) getSidebarHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "section"},
			{Key: "l/Tab", Desc: "websites"},
		},
	}
}

// getSearchModeHints returns hints while typing a search query.
func (a App) getSearchModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "search"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "keep"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "clear"},
		},
	}
}

// getFormHints returns hints for the add/edit modal.
func (a App) getFormHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "Tab", Desc: "next"},
			{Key: "S-Tab", Desc: "prev"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "save"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
	if a.form.Focus == FieldCategory && len(a.form.CategorySuggestions(a.categories)) > 0 {
		hints.Nav = append(hints.Nav, Hint{Key: "→", Desc: "complete"})
	}
	return hints
}
