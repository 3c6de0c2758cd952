package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Card  CardConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthReduction is subtracted from terminal width for the panes.
	// Accounts for app padding: left (2) + right (2) = 4
	WidthReduction int

	// SidebarWidth is the fixed width of the sections sidebar.
	SidebarWidth int

	// ColumnGap is the width each pane's left and right border takes.
	ColumnGap int

	// MinListWidth is the minimum width of the card list.
	MinListWidth int

	// DetailMinTerminalWidth is the terminal width from which the detail
	// pane is shown next to the card list.
	DetailMinTerminalWidth int

	// DetailWidthPercent is the detail pane share of the space left after
	// the sidebar.
	DetailWidthPercent int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int
}

// CardConfig holds bookmark card sizing.
type CardConfig struct {
	// Height is the number of lines one card occupies.
	Height int

	// Gap is the number of blank lines between cards.
	Gap int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// CategorySuggestions: max category suggestions shown under the input.
	CategorySuggestions int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	NameCharLimit        int
	URLCharLimit         int
	CategoryCharLimit    int
	ThumbnailCharLimit   int
	DescriptionCharLimit int
	SearchCharLimit      int

	// Display widths
	StandardWidth int // Used for every form field
	SearchWidth   int // Used for the search input in the header
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:        7, // app padding (1) + header (1) + pane borders (2) + help bar (3)
			MinHeight:              5,
			WidthReduction:         4,
			SidebarWidth:           20,
			ColumnGap:              2,
			MinListWidth:           30,
			DetailMinTerminalWidth: 110,
			DetailWidthPercent:     40,
			ContentPadding:         4,
		},
		Card: CardConfig{
			Height: 3,
			Gap:    1,
		},
		Modal: ModalConfig{
			MinWidth:             50,
			MaxWidth:             80,
			CategorySuggestions:  5,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			NameCharLimit:        100,
			URLCharLimit:         500,
			CategoryCharLimit:    40,
			ThumbnailCharLimit:   500,
			DescriptionCharLimit: 300,
			SearchCharLimit:      100,
			StandardWidth:        40,
			SearchWidth:          30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
