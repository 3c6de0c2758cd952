package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/thumbnail"
	"github.com/nikbrunner/linkvault/internal/tui/layout"
)

const (
	emptyDescription = "No description available"
	dateLayout       = "Jan 2, 2006"
)

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// renderView creates the sidebar | cards | detail view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeAdd, ModeEdit, ModeConfirmDelete:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	cols := layout.CalculateColumns(a.width, a.layoutConfig.Pane)

	panes := []string{
		a.renderSidebar(cols.SidebarWidth, paneHeight),
		a.renderList(cols.ListWidth, paneHeight),
	}
	if cols.DetailWidth > 0 {
		panes = append(panes, a.renderDetail(cols.DetailWidth, paneHeight))
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the section title, record count and the active
// search, filter and sort above the panes.
func (a App) renderHeader() string {
	var parts []string

	title := a.section().Title()
	if a.search.Active() {
		title = "Search results"
	}
	parts = append(parts, a.styles.Title.Render("LinkVault")+" "+title+" "+a.styles.Count.Render("("+strconv.Itoa(len(a.records))+")"))

	if a.mode == ModeSearch {
		parts = append(parts, a.search.Input.View())
	} else if a.search.Active() {
		parts = append(parts, "/"+a.search.Query)
	}

	if a.section().Kind == SectionAll && a.filter != model.FilterAll {
		parts = append(parts, "[filter:"+model.CategoryLabel(a.filter)+"]")
	}
	parts = append(parts, "[sort:"+a.sort.Label()+"]")

	return a.styles.Header.Render(strings.Join(parts, "  "))
}

// sectionCount returns the number of records a section lists before search.
func (a App) sectionCount(s Section) int {
	switch s.Kind {
	case SectionRecent:
		return len(a.vault.GetRecent(a.recentLimit))
	case SectionCategory:
		return len(a.vault.GetByCategory(s.Category))
	default:
		return a.vault.Len()
	}
}

func (a App) renderSidebar(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visible := layout.CalculateVisibleHeight(height, 0)
	start := layout.CalculateViewportOffset(a.sectionIdx, len(a.sections), visible)
	end := min(start+visible, len(a.sections))

	for i := start; i < end; i++ {
		s := a.sections[i]
		count := strconv.Itoa(a.sectionCount(s))
		title, _ := layout.TruncateText(s.Title(), itemWidth-len(count)-1, a.layoutConfig.Text)
		line := layout.PadRight(title, itemWidth-len(count)) + count

		switch {
		case i == a.sectionIdx && a.focus == PaneSidebar:
			content.WriteString(a.styles.ItemSelected.Render(line))
		case i == a.sectionIdx:
			content.WriteString(a.styles.Item.Inherit(a.styles.Title).Render(line))
		default:
			content.WriteString(a.styles.Item.Render(line))
		}
		content.WriteString("\n")
	}

	return a.paneStyle(PaneSidebar).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderList(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.records) == 0 {
		if a.search.Active() {
			content.WriteString(a.styles.Empty.Render("No websites match \"" + a.search.Query + "\""))
		} else {
			content.WriteString(a.styles.Empty.Render("No websites found"))
			content.WriteString("\n\n")
			content.WriteString(a.styles.Empty.Render("Press a to add one"))
		}
	} else {
		visible := layout.CalculateVisibleCards(height, 0, a.layoutConfig.Card)
		offset := layout.CalculateViewportOffset(a.cursor, len(a.records), visible)
		gap := strings.Repeat("\n", a.layoutConfig.Card.Gap+1)

		cards := make([]string, 0, visible)
		for i := offset; i < len(a.records) && i < offset+visible; i++ {
			isSelected := a.focus == PaneList && i == a.cursor
			cards = append(cards, a.renderCard(a.records[i], isSelected, itemWidth))
		}
		content.WriteString(strings.Join(cards, gap))
	}

	return a.paneStyle(PaneList).
		Width(width).
		Height(height).
		Render(content.String())
}

// renderCard renders a bookmark as three lines: badge, name and category;
// URL and date added; description.
func (a App) renderCard(b model.Bookmark, isSelected bool, maxWidth int) string {
	marker := "  "
	if isSelected {
		marker = a.styles.Title.Render("▌ ")
	}

	card := thumbnail.Placeholder(b)
	badge := a.styles.Badge.Background(lipgloss.Color(card.Color)).Render(card.Initial)
	category := a.styles.Category.Render(model.CategoryLabel(b.Category))

	// marker (2) + badge (3) + space + name + two spaces + category
	nameWidth := maxWidth - 6 - 2 - layout.VisibleLength(category)
	name := a.highlightMatch(b.Name, a.search.Query)
	name = layout.TruncateANSIAware(name, nameWidth, a.layoutConfig.Text)

	line1 := marker + badge + " " + name + "  " + category

	meta := b.URL
	if !b.DateAdded.IsZero() {
		meta += " · " + b.DateAdded.Local().Format(dateLayout)
	}
	meta, _ = layout.TruncateText(meta, maxWidth-2, a.layoutConfig.Text)
	line2 := "  " + a.styles.URL.Render(meta)

	desc := b.Description
	descStyle := a.styles.Description
	if desc == "" {
		desc = emptyDescription
		descStyle = a.styles.Empty
	}
	desc, _ = layout.TruncateText(desc, maxWidth-2, a.layoutConfig.Text)
	line3 := "  " + descStyle.Render(desc)

	return line1 + "\n" + line2 + "\n" + line3
}

// highlightMatch renders name with the first case-insensitive occurrence of
// query in the match style.
func (a App) highlightMatch(name, query string) string {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return a.styles.Name.Render(name)
	}

	runes := []rune(name)
	for i := 0; i+len(q) <= len(runes); i++ {
		match := true
		for j, r := range q {
			if unicode.ToLower(runes[i+j]) != r {
				match = false
				break
			}
		}
		if match {
			return a.styles.Name.Render(string(runes[:i])) +
				a.styles.Match.Render(string(runes[i:i+len(q)])) +
				a.styles.Name.Render(string(runes[i+len(q):]))
		}
	}
	return a.styles.Name.Render(name)
}

func (a App) renderDetail(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	b := a.Selected()
	if b == nil {
		content.WriteString(a.styles.Empty.Render("(nothing selected)"))
	} else {
		card := thumbnail.Placeholder(*b)
		wrap := lipgloss.NewStyle().Width(itemWidth)

		content.WriteString(a.styles.Title.Render(b.Name) + "\n\n")

		url, _ := layout.TruncateText(b.URL, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render(url) + "\n\n")

		content.WriteString(a.styles.Category.Render(model.CategoryLabel(b.Category)) + "\n\n")

		if b.Description != "" {
			content.WriteString(wrap.Inherit(a.styles.Description).Render(b.Description) + "\n\n")
		} else {
			content.WriteString(a.styles.Empty.Render(emptyDescription) + "\n\n")
		}

		content.WriteString(a.styles.Date.Render("Added:    "+b.DateAdded.Local().Format(dateLayout)) + "\n")
		if b.DateModified != nil {
			content.WriteString(a.styles.Date.Render("Modified: "+b.DateModified.Local().Format(dateLayout)) + "\n")
		}

		image := card.FaviconURL
		if card.ImageURL != "" {
			image = card.ImageURL
		}
		if image != "" {
			image, _ = layout.TruncateText(image, itemWidth-10, a.layoutConfig.Text)
			content.WriteString(a.styles.Date.Render("Image:    "+image) + "\n")
		}
		content.WriteString(a.styles.Date.Render("Color:    ") +
			a.styles.Badge.Background(lipgloss.Color(card.Color)).Render(card.Initial) + " " +
			a.styles.Date.Render(card.Color))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) paneStyle(p Pane) lipgloss.Style {
	if a.focus == p && a.mode == ModeNormal {
		return a.styles.PaneActive
	}
	return a.styles.Pane
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR toast (toast replaces the gap)
	if a.toast != nil {
		lines = append(lines, a.renderToast())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	if localHints := a.renderHints(a.getContextualHints()); localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global keyboard hints (only in normal mode - modals have their own flow)
	if a.mode == ModeNormal {
		if globalHints := a.renderHintSlice(a.getGlobalHints()); globalHints != "" {
			lines = append(lines, a.styles.HintLabel.Render("Global ")+globalHints)
		}
	}

	return strings.Join(lines, "\n")
}

// renderToast renders the styled toast with prefix icon based on type.
func (a App) renderToast() string {
	var style lipgloss.Style
	var prefix string

	switch a.toast.Type {
	case ToastError:
		style = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case ToastWarning:
		style = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case ToastSuccess:
		style = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // ToastInfo
		style = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return style.Render(prefix + a.toast.Text)
}

func (a App) renderModal() string {
	var title, content strings.Builder

	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.FormWidth(a.width, a.layoutConfig)

	switch a.mode {
	case ModeAdd, ModeEdit:
		if a.mode == ModeAdd {
			title.WriteString("Add Website\n\n")
		} else {
			title.WriteString("Edit Website\n\n")
		}
		for i, input := range a.form.Inputs {
			label := fieldLabels[i] + ":"
			if i == a.form.Focus {
				label = a.styles.Title.Render(label)
			}
			content.WriteString(label + "\n")
			content.WriteString(input.View())
			if i == FieldCategory && a.form.Focus == FieldCategory {
				content.WriteString(a.renderCategorySuggestions())
			}
			if i < len(a.form.Inputs)-1 {
				content.WriteString("\n\n")
			}
		}

	case ModeConfirmDelete:
		name := "this website"
		if b, ok := a.vault.GetByID(a.deleteID); ok {
			name = b.Name
		}
		modalWidth = layout.ConfirmWidth(a.width, fmt.Sprintf("%q", name), a.layoutConfig)
		title.WriteString("Delete Website?\n\n")
		content.WriteString(fmt.Sprintf("%q\n\n", name))
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	modal := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(a.styles.Title.Render(title.String())+content.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderCategorySuggestions() string {
	suggestions := a.form.CategorySuggestions(a.categories)
	if len(suggestions) == 0 {
		return ""
	}
	if limit := a.layoutConfig.Modal.CategorySuggestions; len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return "\n" + a.styles.Empty.Render("  "+strings.Join(suggestions, "  "))
}

func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: Navigation + View
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k      move\n")
	left.WriteString("gg       top\n")
	left.WriteString("G        bottom\n")
	left.WriteString("h/l      sections/list\n")
	left.WriteString("tab      switch pane\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("view") + "\n")
	left.WriteString("/        search\n")
	left.WriteString("esc      clear search\n")
	left.WriteString("f        filter (All)\n")
	left.WriteString("s        sort\n")

	// Right column: Actions + Edit
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("enter/o  open in browser\n")
	right.WriteString("y        copy URL\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a        add website\n")
	right.WriteString("e        edit\n")
	right.WriteString("d        delete\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
