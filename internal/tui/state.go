package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/tui/layout"
)

// Mode represents the current input mode of the application.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeEdit
	ModeConfirmDelete
	ModeHelp
)

// Pane identifies which column has keyboard focus.
type Pane int

const (
	PaneList Pane = iota
	PaneSidebar
)

// ToastType determines the styling of a toast.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast is a transient status message. ID ties it to the tick that
// dismisses it so a newer toast is not cleared by an older timer.
type Toast struct {
	ID   int
	Type ToastType
	Text string
}

// Form field indexes.
const (
	FieldName = iota
	FieldURL
	FieldCategory
	FieldThumbnail
	FieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "URL", "Category", "Thumbnail URL", "Description"}

// FormState holds the add/edit modal inputs.
type FormState struct {
	Inputs [fieldCount]textinput.Model
	Focus  int
	EditID string // empty when adding
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	var f FormState

	limits := [fieldCount]int{
		cfg.Input.NameCharLimit,
		cfg.Input.URLCharLimit,
		cfg.Input.CategoryCharLimit,
		cfg.Input.ThumbnailCharLimit,
		cfg.Input.DescriptionCharLimit,
	}
	placeholders := [fieldCount]string{"My favorite site", "https://...", "web", "optional", "optional"}

	for i := range f.Inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = limits[i]
		input.Width = cfg.Input.StandardWidth
		f.Inputs[i] = input
	}
	return f
}

// Reset clears every input and focuses the first one.
func (f *FormState) Reset() {
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.EditID = ""
	f.setFocus(FieldName)
}

// Fill loads a bookmark into the inputs for editing.
func (f *FormState) Fill(b model.Bookmark) {
	f.Reset()
	f.EditID = b.ID
	f.Inputs[FieldName].SetValue(b.Name)
	f.Inputs[FieldURL].SetValue(b.URL)
	f.Inputs[FieldCategory].SetValue(b.Category)
	if b.ThumbnailURL != nil {
		f.Inputs[FieldThumbnail].SetValue(*b.ThumbnailURL)
	}
	f.Inputs[FieldDescription].SetValue(b.Description)
}

// Next moves focus forward, wrapping around.
func (f *FormState) Next() {
	f.setFocus((f.Focus + 1) % fieldCount)
}

// Prev moves focus backward, wrapping around.
func (f *FormState) Prev() {
	f.setFocus((f.Focus + fieldCount - 1) % fieldCount)
}

func (f *FormState) setFocus(i int) {
	f.Focus = i
	for j := range f.Inputs {
		if j == i {
			f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
}

// Input returns the form contents as a BookmarkInput. A blank thumbnail
// becomes nil so the card falls back to the generated placeholder.
func (f FormState) Input() model.BookmarkInput {
	in := model.BookmarkInput{
		Name:        f.Inputs[FieldName].Value(),
		URL:         f.Inputs[FieldURL].Value(),
		Category:    strings.TrimSpace(f.Inputs[FieldCategory].Value()),
		Description: strings.TrimSpace(f.Inputs[FieldDescription].Value()),
	}
	if thumb := strings.TrimSpace(f.Inputs[FieldThumbnail].Value()); thumb != "" {
		in.ThumbnailURL = &thumb
	}
	return in
}

// CategorySuggestions returns the known categories starting with the
// category input, ignoring case and excluding an exact match.
func (f FormState) CategorySuggestions(categories []string) []string {
	typed := strings.TrimSpace(f.Inputs[FieldCategory].Value())
	prefix := strings.ToLower(typed)
	var out []string
	for _, c := range categories {
		if strings.HasPrefix(strings.ToLower(c), prefix) && c != typed {
			out = append(out, c)
		}
	}
	return out
}

// SearchState holds the search-as-you-type input.
type SearchState struct {
	Input textinput.Model
	Query string // applied query, kept after the input closes
}

// NewSearchState creates a SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search websites..."
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// Active reports whether a non-blank query overrides the section.
func (s SearchState) Active() bool {
	return strings.TrimSpace(s.Query) != ""
}
