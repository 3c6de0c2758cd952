package layout

import "github.com/charmbracelet/x/ansi"

const (
	// "> " prompt plus the cursor cell of a textinput
	inputChrome = 3

	// horizontal modal padding, 2 on each side
	modalPadding = 4

	// border plus one column of air on each side
	terminalMargin = 4
)

// FormWidth returns the add/edit modal width: one form input with its prompt
// and cursor inside the modal padding, clamped to the modal bounds and to
// the terminal.
func FormWidth(terminalWidth int, cfg LayoutConfig) int {
	return fitModal(cfg.Input.StandardWidth+inputChrome+modalPadding, terminalWidth, cfg.Modal)
}

// ConfirmWidth returns the delete confirmation width, wide enough to show the
// quoted record name on one line when the terminal allows it.
func ConfirmWidth(terminalWidth int, name string, cfg LayoutConfig) int {
	return fitModal(ansi.StringWidth(name)+2+modalPadding, terminalWidth, cfg.Modal)
}

func fitModal(want, terminalWidth int, cfg ModalConfig) int {
	width := min(max(want, cfg.MinWidth), cfg.MaxWidth)
	return max(min(width, terminalWidth-terminalMargin), 1)
}
