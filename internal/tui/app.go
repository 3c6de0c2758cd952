package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/tui/layout"
	"github.com/nikbrunner/linkvault/internal/vault"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// WelcomeToastDuration keeps the first-run greeting up longer.
const WelcomeToastDuration = 5 * time.Second

// WelcomeText greets a user opening LinkVault for the first time.
const WelcomeText = "Welcome to LinkVault! Press ? to see every key."

// App is the main bubbletea model for LinkVault.
type App struct {
	ctx          context.Context
	vault        *vault.Vault
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	// Sidebar state
	configured []string  // categories from configuration
	categories []string  // configured plus those present in data
	sections   []Section // All, Recent, categories
	sectionIdx int
	focus      Pane

	// List state
	records []model.Bookmark // what the card list shows
	cursor  int
	filter  string // category filter, only applied in All
	sort    model.SortCriterion

	mode     Mode
	search   SearchState
	form     FormState
	deleteID string

	toast         *Toast
	toastSeq      int
	toastDuration time.Duration
	recentLimit   int
	initCmd       tea.Cmd

	openURL func(string) error
	copyURL func(string) error

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context       context.Context      // optional, uses context.Background if nil
	Vault         *vault.Vault
	Keys          *KeyMap              // optional, uses default if nil
	Styles        *Styles              // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig // optional, uses default if nil
	Categories    []string             // optional, uses model.DefaultCategories if nil
	RecentLimit   int                  // optional, uses vault.DefaultRecentLimit if <= 0
	ToastDuration time.Duration        // optional, uses DefaultToastDuration if <= 0
	OpenURL       func(string) error   // opens a URL in the browser
	CopyURL       func(string) error   // optional, uses the system clipboard if nil
	Welcome       bool                 // show the first-run greeting on start
}

// toastExpiredMsg dismisses the toast with the given id.
type toastExpiredMsg struct{ id int }

// openedMsg reports the result of opening a URL.
type openedMsg struct {
	name string
	err  error
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	categories := params.Categories
	if categories == nil {
		categories = model.DefaultCategories()
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	recentLimit := params.RecentLimit
	if recentLimit <= 0 {
		recentLimit = vault.DefaultRecentLimit
	}

	toastDuration := params.ToastDuration
	if toastDuration <= 0 {
		toastDuration = DefaultToastDuration
	}

	copyURL := params.CopyURL
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}

	app := App{
		ctx:           ctx,
		vault:         params.Vault,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutCfg,
		configured:    categories,
		filter:        model.FilterAll,
		sort:          model.SortDefault,
		search:        NewSearchState(layoutCfg),
		form:          NewFormState(layoutCfg),
		toastDuration: toastDuration,
		recentLimit:   recentLimit,
		openURL:       params.OpenURL,
		copyURL:       copyURL,
		width:         80,
		height:        24,
	}

	app.refresh()
	if params.Welcome {
		app.initCmd = app.showToastFor(ToastInfo, WelcomeText, max(WelcomeToastDuration, toastDuration))
	}
	return app
}

// refresh rebuilds the sections and the visible records, keeping the
// current section and clamping the cursor.
func (a *App) refresh() {
	var current Section
	if len(a.sections) > 0 {
		current = a.section()
	}

	present := a.vault.Categories()
	a.categories = mergeCategories(a.configured, present)
	a.sections = buildSections(a.configured, present)

	a.sectionIdx = 0
	for i, s := range a.sections {
		if s == current {
			a.sectionIdx = i
			break
		}
	}

	if a.filter != model.FilterAll && !slices.Contains(a.categories, a.filter) {
		a.filter = model.FilterAll
	}

	a.records = a.visibleRecords()
	a.clampCursor()
}

// visibleRecords applies section, search, filter and sort in that order.
// A search query replaces the section's records with matches from the whole
// collection; the category filter only applies in All.
func (a App) visibleRecords() []model.Bookmark {
	s := a.section()

	var records []model.Bookmark
	switch s.Kind {
	case SectionRecent:
		records = a.vault.GetRecent(a.recentLimit)
	case SectionCategory:
		records = a.vault.GetByCategory(s.Category)
	default:
		records = a.vault.GetAll()
	}

	if a.search.Active() {
		records = a.vault.Search(a.search.Query)
	}
	if s.Kind == SectionAll {
		records = a.vault.FilterByCategory(records, a.filter)
	}
	return a.vault.SortBy(records, a.sort)
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.records) {
		a.cursor = len(a.records) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) section() Section {
	return a.sections[a.sectionIdx]
}

// Cursor returns the current cursor position in the card list.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Focus returns the focused pane.
func (a App) Focus() Pane {
	return a.focus
}

// Section returns the selected sidebar section.
func (a App) Section() Section {
	return a.section()
}

// Sections returns the sidebar sections.
func (a App) Sections() []Section {
	return a.sections
}

// Records returns the bookmarks the card list currently shows.
func (a App) Records() []model.Bookmark {
	return a.records
}

// Selected returns the bookmark under the cursor, or nil.
func (a App) Selected() *model.Bookmark {
	if a.cursor < 0 || a.cursor >= len(a.records) {
		return nil
	}
	return &a.records[a.cursor]
}

// Filter returns the category filter.
func (a App) Filter() string {
	return a.filter
}

// Sort returns the sort criterion.
func (a App) Sort() model.SortCriterion {
	return a.sort
}

// SearchQuery returns the applied search query.
func (a App) SearchQuery() string {
	return a.search.Query
}

// Toast returns the visible toast, or nil.
func (a App) Toast() *Toast {
	return a.toast
}

// Form returns the add/edit form state.
func (a App) Form() FormState {
	return a.form
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case toastExpiredMsg:
		if a.toast != nil && a.toast.ID == msg.id {
			a.toast = nil
		}
		return a, nil

	case openedMsg:
		if msg.err != nil {
			return a, a.showToast(ToastError, "Could not open "+msg.name)
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeAdd, ModeEdit:
			return a.updateForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.moveTo(0)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.focus == PaneSidebar {
			a.moveTo(a.sectionIdx + 1)
		} else {
			a.moveTo(a.cursor + 1)
		}

	case key.Matches(msg, a.keys.Up):
		if a.focus == PaneSidebar {
			a.moveTo(a.sectionIdx - 1)
		} else {
			a.moveTo(a.cursor - 1)
		}

	case key.Matches(msg, a.keys.Bottom):
		if a.focus == PaneSidebar {
			a.moveTo(len(a.sections) - 1)
		} else {
			a.moveTo(len(a.records) - 1)
		}

	case key.Matches(msg, a.keys.Left):
		a.focus = PaneSidebar

	case key.Matches(msg, a.keys.Right):
		a.focus = PaneList

	case key.Matches(msg, a.keys.SwitchPane):
		if a.focus == PaneList {
			a.focus = PaneSidebar
		} else {
			a.focus = PaneList
		}

	case key.Matches(msg, a.keys.Open):
		if a.focus == PaneSidebar {
			a.focus = PaneList
			return a, nil
		}
		return a, a.openSelected()

	case key.Matches(msg, a.keys.Yank):
		return a, a.copySelected()

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.search.Query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Filter):
		a.cycleFilter()

	case key.Matches(msg, a.keys.Sort):
		a.cycleSort()

	case key.Matches(msg, a.keys.Clear):
		if a.search.Active() {
			a.setSearch("")
		}

	case key.Matches(msg, a.keys.Add):
		a.form.Reset()
		if s := a.section(); s.Kind == SectionCategory {
			a.form.Inputs[FieldCategory].SetValue(s.Category)
		} else if a.filter != model.FilterAll {
			a.form.Inputs[FieldCategory].SetValue(a.filter)
		}
		a.mode = ModeAdd
		return a, a.form.Inputs[FieldName].Focus()

	case key.Matches(msg, a.keys.Edit):
		b := a.Selected()
		if b == nil {
			return a, nil
		}
		a.form.Fill(*b)
		a.mode = ModeEdit
		return a, a.form.Inputs[FieldName].Focus()

	case key.Matches(msg, a.keys.Delete):
		b := a.Selected()
		if b == nil {
			return a, nil
		}
		a.deleteID = b.ID
		a.mode = ModeConfirmDelete

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// moveTo moves the cursor of the focused pane to i, clamped to its bounds.
// Moving in the sidebar selects the section.
func (a *App) moveTo(i int) {
	if a.focus == PaneSidebar {
		if i < 0 || i >= len(a.sections) || i == a.sectionIdx {
			return
		}
		a.sectionIdx = i
		a.cursor = 0
		a.records = a.visibleRecords()
		return
	}

	if i >= len(a.records) {
		i = len(a.records) - 1
	}
	if i < 0 {
		i = 0
	}
	a.cursor = i
}

// cycleFilter advances all -> each category -> all.
func (a *App) cycleFilter() {
	next := model.FilterAll
	if a.filter == model.FilterAll {
		if len(a.categories) > 0 {
			next = a.categories[0]
		}
	} else {
		for i, c := range a.categories {
			if c == a.filter && i+1 < len(a.categories) {
				next = a.categories[i+1]
			}
		}
	}
	a.filter = next
	a.cursor = 0
	a.records = a.visibleRecords()
}

// cycleSort advances through model.SortCriteria.
func (a *App) cycleSort() {
	next := model.SortCriteria[0]
	for i, c := range model.SortCriteria {
		if c == a.sort && i+1 < len(model.SortCriteria) {
			next = model.SortCriteria[i+1]
		}
	}
	a.sort = next
	a.records = a.visibleRecords()
	a.clampCursor()
}

func (a *App) setSearch(query string) {
	a.search.Query = query
	a.cursor = 0
	a.records = a.visibleRecords()
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.search.Input.Blur()
		a.search.Input.Reset()
		a.setSearch("")
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.search.Input.Blur()
		a.focus = PaneList
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if v := a.search.Input.Value(); v != a.search.Query {
		a.setSearch(v)
	}
	return a, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.form.Reset()
		return a, nil

	case tea.KeyTab, tea.KeyDown:
		a.form.Next()
		return a, nil

	case tea.KeyShiftTab, tea.KeyUp:
		a.form.Prev()
		return a, nil

	case tea.KeyRight:
		// Complete the category from the first suggestion when the cursor is at the end.
		in := &a.form.Inputs[FieldCategory]
		if a.form.Focus == FieldCategory && in.Position() == len(in.Value()) {
			if s := a.form.CategorySuggestions(a.categories); len(s) > 0 {
				in.SetValue(s[0])
				in.CursorEnd()
				return a, nil
			}
		}

	case tea.KeyEnter:
		return a.submitForm()
	}

	var cmd tea.Cmd
	a.form.Inputs[a.form.Focus], cmd = a.form.Inputs[a.form.Focus].Update(msg)
	return a, cmd
}

// submitForm saves the add/edit form. Name and URL are required by the form;
// everything else is optional.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	input := a.form.Input()
	if input.Name == "" || input.URL == "" {
		return a, a.showToast(ToastError, "Name and URL are required")
	}

	var text string
	if a.mode == ModeEdit {
		b, ok := a.vault.Update(a.ctx, a.form.EditID, input)
		if !ok {
			a.mode = ModeNormal
			a.form.Reset()
			a.refresh()
			return a, a.showToast(ToastError, "Website not found")
		}
		text = fmt.Sprintf("Updated %q successfully", b.Name)
	} else {
		b := a.vault.Add(a.ctx, input)
		text = fmt.Sprintf("Added %q successfully", b.Name)
		a.cursor = 0
	}

	a.mode = ModeNormal
	a.form.Reset()
	a.refresh()
	return a, a.mutationToast(text)
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter || msg.String() == "y":
		id := a.deleteID
		a.deleteID = ""
		a.mode = ModeNormal

		b, ok := a.vault.GetByID(id)
		if !ok || !a.vault.Delete(a.ctx, id) {
			a.refresh()
			return a, a.showToast(ToastError, "Website not found")
		}
		a.refresh()
		return a, a.mutationToast(fmt.Sprintf("Deleted %q successfully", b.Name))

	case msg.Type == tea.KeyEsc || msg.String() == "n" || msg.String() == "q":
		a.deleteID = ""
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
		a.mode = ModeNormal
	}
	return a, nil
}

// mutationToast reports a successful change, or a warning when it could
// not be persisted. The change itself is kept either way.
func (a *App) mutationToast(text string) tea.Cmd {
	if a.vault.PersistErr() != nil {
		return a.showToast(ToastWarning, "Changes could not be saved")
	}
	return a.showToast(ToastSuccess, text)
}

// showToast replaces the visible toast and schedules its dismissal.
func (a *App) showToast(t ToastType, text string) tea.Cmd {
	return a.showToastFor(t, text, a.toastDuration)
}

func (a *App) showToastFor(t ToastType, text string, d time.Duration) tea.Cmd {
	a.toastSeq++
	id := a.toastSeq
	a.toast = &Toast{ID: id, Type: t, Text: text}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (a *App) openSelected() tea.Cmd {
	b := a.Selected()
	if b == nil || a.openURL == nil {
		return nil
	}
	name, url, open := b.Name, b.URL, a.openURL
	return func() tea.Msg {
		return openedMsg{name: name, err: open(url)}
	}
}

func (a *App) copySelected() tea.Cmd {
	b := a.Selected()
	if b == nil {
		return nil
	}
	if err := a.copyURL(b.URL); err != nil {
		return a.showToast(ToastError, "Could not copy URL: "+err.Error())
	}
	return a.showToast(ToastInfo, "Copied "+b.URL)
}
