package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLength returns the number of terminal cells s occupies. Escape codes
// take none and wide runes take two.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText cuts text to maxWidth cells, ending in cfg.Ellipsis, and
// reports whether it cut anything. When maxWidth cannot hold the ellipsis,
// the ellipsis itself is cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if VisibleLength(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= VisibleLength(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// PadRight pads text with spaces until its visible length reaches width.
// Text that is already wide enough is returned unchanged.
func PadRight(text string, width int) string {
	n := width - VisibleLength(text)
	if n <= 0 {
		return text
	}
	return text + strings.Repeat(" ", n)
}

// TruncateANSIAware cuts styled text to maxWidth cells without splitting
// escape sequences. Card names carry highlighted search matches. A cut result
// ends in a style reset so the highlight cannot bleed into the category.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleLength(styledText) <= maxWidth {
		return styledText
	}
	return ansi.Truncate(styledText, maxWidth, cfg.Ellipsis) + ansi.ResetStyle
}
