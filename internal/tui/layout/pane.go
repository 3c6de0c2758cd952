package layout

// Columns holds calculated column widths. DetailWidth is 0 when the detail
// pane does not fit.
type Columns struct {
	SidebarWidth int
	ListWidth    int
	DetailWidth  int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumns splits the terminal width into sidebar, card list and,
// on wide terminals, a detail pane.
func CalculateColumns(terminalWidth int, cfg PaneConfig) Columns {
	cols := Columns{SidebarWidth: cfg.SidebarWidth}

	// sidebar and list borders
	rest := terminalWidth - cfg.WidthReduction - cfg.SidebarWidth - 2*cfg.ColumnGap
	if terminalWidth >= cfg.DetailMinTerminalWidth {
		cols.DetailWidth = rest * cfg.DetailWidthPercent / 100
		rest -= cols.DetailWidth + cfg.ColumnGap
	}

	if rest < cfg.MinListWidth {
		rest = cfg.MinListWidth
	}
	cols.ListWidth = rest
	return cols
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible line count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateVisibleCards computes how many cards fit in a pane. The last card
// needs no trailing gap.
func CalculateVisibleCards(paneHeight, headerLines int, cfg CardConfig) int {
	height := CalculateVisibleHeight(paneHeight, headerLines)
	n := (height + cfg.Gap) / (cfg.Height + cfg.Gap)
	if n < 1 {
		return 1
	}
	return n
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
