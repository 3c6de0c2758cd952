// Package cli implements the lv subcommands on top of the record store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/linkvault/internal/browser"
	"github.com/nikbrunner/linkvault/internal/culler"
	"github.com/nikbrunner/linkvault/internal/exporter"
	"github.com/nikbrunner/linkvault/internal/importer"
	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/picker"
	"github.com/nikbrunner/linkvault/internal/search"
	"github.com/nikbrunner/linkvault/internal/vault"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	idStyle    = lipgloss.NewStyle().Bold(true)
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// PickFunc lets the user choose one of several quick-open matches.
// It returns nil when the choice was cancelled.
type PickFunc func(results []search.Result, query string) (*model.Bookmark, error)

// Commands handles all CLI command execution.
type Commands struct {
	vault   *vault.Vault
	out     io.Writer
	log     logger.Logger
	openURL func(string) error
	copyURL func(string) error
	pick    PickFunc
}

// Option configures Commands.
type Option func(*Commands)

// WithOutput redirects command output, mainly for tests.
func WithOutput(w io.Writer) Option {
	return func(c *Commands) { c.out = w }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Commands) { c.log = log }
}

// WithOpener replaces the browser launcher.
func WithOpener(fn func(string) error) Option {
	return func(c *Commands) { c.openURL = fn }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(c *Commands) { c.copyURL = fn }
}

// WithPicker replaces the interactive quick-open picker.
func WithPicker(pick PickFunc) Option {
	return func(c *Commands) { c.pick = pick }
}

// NewCommands creates a new Commands instance.
func NewCommands(v *vault.Vault, opts ...Option) *Commands {
	c := &Commands{
		vault:   v,
		out:     os.Stdout,
		log:     logger.Nop(),
		openURL: browser.Open,
		copyURL: clipboard.WriteAll,
		pick:    runPicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Commands) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// warnPersist reports a failed save. The change stays in memory for this run
// only.
func (c *Commands) warnPersist() error {
	if err := c.vault.PersistErr(); err != nil {
		return fmt.Errorf("changes could not be saved: %w", err)
	}
	return nil
}

// Add saves a new website. Name and URL are required.
func (c *Commands) Add(ctx context.Context, in model.BookmarkInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return fmt.Errorf("name and URL are required")
	}
	in.Category = normalizeCategory(in.Category)

	duplicate := model.HasURL(c.vault.GetAll(), in.URL)
	b := c.vault.Add(ctx, in)

	c.printf("%s %s %s %s\n", okStyle.Render("Added"), idStyle.Render(b.ID), b.Name, urlStyle.Render(b.URL))
	if duplicate {
		c.printf("%s %s was already saved\n", warnStyle.Render("Note:"), b.URL)
	}
	return c.warnPersist()
}

// EditOptions holds the fields to change. Nil fields keep their value; an
// empty Thumbnail removes the custom image.
type EditOptions struct {
	Name        *string
	URL         *string
	Category    *string
	Description *string
	Thumbnail   *string
}

// Edit changes fields of the website with id.
func (c *Commands) Edit(ctx context.Context, id string, opts EditOptions) error {
	current, ok := c.vault.GetByID(id)
	if !ok {
		return c.notFound(id)
	}

	in := current.Input()
	if opts.Name != nil {
		in.Name = *opts.Name
	}
	if opts.URL != nil {
		in.URL = *opts.URL
	}
	if opts.Category != nil {
		in.Category = normalizeCategory(*opts.Category)
	}
	if opts.Description != nil {
		in.Description = *opts.Description
	}
	if opts.Thumbnail != nil {
		in.ThumbnailURL = nil
		if thumb := strings.TrimSpace(*opts.Thumbnail); thumb != "" {
			in.ThumbnailURL = &thumb
		}
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return fmt.Errorf("name and URL are required")
	}

	b, ok := c.vault.Update(ctx, id, in)
	if !ok {
		return c.notFound(id)
	}
	c.printf("%s %s %s %s\n", okStyle.Render("Updated"), idStyle.Render(b.ID), b.Name, urlStyle.Render(b.URL))
	return c.warnPersist()
}

// Remove deletes one or more websites.
func (c *Commands) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one ID required")
	}

	var deleted, failed []string
	for _, id := range ids {
		b, ok := c.vault.GetByID(id)
		if !ok || !c.vault.Delete(ctx, id) {
			failed = append(failed, c.notFound(id).Error())
			continue
		}
		deleted = append(deleted, id)
		c.printf("%s %s %s\n", errStyle.Render("Deleted"), idStyle.Render(id), b.Name)
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to delete: %s", strings.Join(failed, "; "))
	}
	return c.warnPersist()
}

func (c *Commands) notFound(id string) error {
	msg := fmt.Sprintf("website %s not found", id)
	if suggestion := suggestID(id, c.vault.GetAll()); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", suggestion)
	}
	return fmt.Errorf("%s: %w", msg, model.ErrNotFound)
}

// ListOptions selects and orders the listed websites. Search replaces the
// category; Filter applies on top.
type ListOptions struct {
	Category string
	Filter   string
	Sort     model.SortCriterion
	Search   string
	JSON     bool
}

// List prints websites as a table or JSON.
func (c *Commands) List(opts ListOptions) error {
	var records []model.Bookmark
	switch {
	case strings.TrimSpace(opts.Search) != "":
		records = c.vault.Search(opts.Search)
	case opts.Category != "":
		records = c.vault.GetByCategory(normalizeCategory(opts.Category))
	default:
		records = c.vault.GetAll()
	}
	if opts.Filter != "" {
		records = c.vault.FilterByCategory(records, normalizeFilter(opts.Filter))
	}
	records = c.vault.SortBy(records, opts.Sort)

	return c.printRecords(records, opts.JSON)
}

// Recent prints the most recently added websites.
func (c *Commands) Recent(limit int, asJSON bool) error {
	return c.printRecords(c.vault.GetRecent(limit), asJSON)
}

func (c *Commands) printRecords(records []model.Bookmark, asJSON bool) error {
	if asJSON {
		data, err := exporter.ExportJSON(records)
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		_, err = c.out.Write(data)
		return err
	}

	if len(records) == 0 {
		c.printf("No websites found.\n")
		return nil
	}
	c.printf("%s\n", renderTable(records))
	return nil
}

// Categories prints every category with its record count.
func (c *Commands) Categories(asJSON bool) error {
	categories := c.vault.Categories()

	if asJSON {
		counts := make(map[string]int, len(categories))
		for _, cat := range categories {
			counts[cat] = len(c.vault.GetByCategory(cat))
		}
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	if len(categories) == 0 {
		c.printf("No categories yet.\n")
		return nil
	}
	for _, cat := range categories {
		name := cat
		if name == "" {
			name = mutedStyle.Render("(none)")
		}
		c.printf("%-20s %s %d\n", name, mutedStyle.Render(model.CategoryLabel(cat)), len(c.vault.GetByCategory(cat)))
	}
	return nil
}

// Open opens the website with id in the browser, or copies its URL.
func (c *Commands) Open(id string, copyOnly bool) error {
	b, ok := c.vault.GetByID(id)
	if !ok {
		return c.notFound(id)
	}
	return c.launch(b, copyOnly)
}

func (c *Commands) launch(b model.Bookmark, copyOnly bool) error {
	if copyOnly {
		if err := c.copyURL(b.URL); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.printf("%s %s\n", okStyle.Render("Copied"), urlStyle.Render(b.URL))
		return nil
	}

	if err := c.openURL(b.URL); err != nil {
		return fmt.Errorf("could not open %s: %w", b.Name, err)
	}
	c.printf("%s %s\n", okStyle.Render("Opening"), urlStyle.Render(b.URL))
	return nil
}

// Find fuzzy-searches name and URL. One match opens directly, several show
// the picker.
func (c *Commands) Find(query string, copyOnly bool) error {
	results := search.Fuzzy(c.vault.GetAll(), query)
	if len(results) == 0 {
		c.printf("No websites found for %q\n", query)
		return nil
	}

	selected := results[0].Bookmark
	if len(results) > 1 {
		var err error
		selected, err = c.pick(results, query)
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		if selected == nil {
			return nil
		}
	}
	return c.launch(*selected, copyOnly)
}

func runPicker(results []search.Result, query string) (*model.Bookmark, error) {
	final, err := tea.NewProgram(picker.New(results, query)).Run()
	if err != nil {
		return nil, err
	}
	p := final.(picker.Picker)
	if p.Cancelled() {
		return nil, nil
	}
	return p.SelectedBookmark(), nil
}

// Import merges a Netscape HTML or lv JSON file into the collection. Files
// ending in .json are read as JSON.
func (c *Commands) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var records []model.Bookmark
	if strings.EqualFold(filepath.Ext(path), ".json") {
		records, err = importer.ParseJSON(f)
	} else {
		records, err = importer.ParseHTML(f)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	added, skipped := c.vault.Import(ctx, records)
	c.log.Info("import finished", logger.String("path", path), logger.Int("added", added), logger.Int("skipped", skipped))

	c.printf("%s %d websites", okStyle.Render("Imported"), added)
	if skipped > 0 {
		c.printf(" (%d duplicates skipped)", skipped)
	}
	c.printf("\n")
	return c.warnPersist()
}

// Export writes the collection as "html" or "json" to path. An empty path
// uses the default export location; "-" writes to the command output.
func (c *Commands) Export(path, format string) error {
	records := c.vault.GetAll()

	var data []byte
	switch strings.ToLower(format) {
	case "html", "":
		format = "html"
		data = []byte(exporter.ExportHTML(records))
	case "json":
		var err error
		if data, err = exporter.ExportJSON(records); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q (want html or json)", format)
	}

	if path == "-" {
		_, err := c.out.Write(data)
		return err
	}
	if path == "" {
		var err error
		if path, err = exporter.DefaultExportPath(format); err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	c.printf("%s %d websites to %s\n", okStyle.Render("Exported"), len(records), path)
	return nil
}

// Check requests every URL and reports dead and unreachable websites. With
// prune, dead websites are deleted.
func (c *Commands) Check(ctx context.Context, opts culler.Options, prune bool) error {
	records := c.vault.GetAll()
	if len(records) == 0 {
		c.printf("No websites to check.\n")
		return nil
	}

	c.printf("Checking %d websites...\n", len(records))
	if opts.Log == nil {
		opts.Log = c.log
	}
	results := culler.CheckURLs(ctx, records, opts)

	for _, r := range results {
		switch r.Status {
		case culler.Dead:
			c.printf("%s %s %s %s\n", errStyle.Render("dead"), idStyle.Render(r.Bookmark.ID), r.Bookmark.Name, mutedStyle.Render(fmt.Sprintf("(%d)", r.StatusCode)))
		case culler.Unreachable:
			c.printf("%s %s %s %s\n", warnStyle.Render("unreachable"), idStyle.Render(r.Bookmark.ID), r.Bookmark.Name, mutedStyle.Render(r.Error))
		}
	}

	sum := culler.Summarize(results)
	c.printf("%d healthy, %d dead, %d unreachable\n", sum.Healthy, sum.Dead, sum.Unreachable)

	if !prune || sum.Dead == 0 {
		return nil
	}
	removed := 0
	for _, r := range results {
		if r.Status == culler.Dead && c.vault.Delete(ctx, r.Bookmark.ID) {
			removed++
		}
	}
	c.printf("%s %d dead websites\n", errStyle.Render("Removed"), removed)
	return c.warnPersist()
}

// Seed adds the sample collection to an empty store.
func (c *Commands) Seed(ctx context.Context) error {
	n := c.vault.SeedIfEmpty(ctx)
	if n == 0 {
		c.printf("Collection is not empty, nothing seeded.\n")
		return nil
	}
	c.printf("%s %d sample websites\n", okStyle.Render("Seeded"), n)
	return c.warnPersist()
}

func normalizeCategory(category string) string {
	return strings.TrimSpace(category)
}

func normalizeFilter(filter string) string {
	f := normalizeCategory(filter)
	if f == "" || strings.EqualFold(f, model.FilterAll) {
		return model.FilterAll
	}
	return f
}
