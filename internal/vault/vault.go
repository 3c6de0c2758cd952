// Package vault owns the in-memory bookmark collection and keeps it
// persisted in a storage.KV entry.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/storage"
)

// DefaultRecentLimit is used by GetRecent when the caller passes limit <= 0.
const DefaultRecentLimit = 10

// Vault is the record store. It is safe for concurrent use.
type Vault struct {
	mu          sync.RWMutex
	records     []model.Bookmark
	persistErr  error
	kv          storage.KV
	key         string
	log         logger.Logger
	now         func() time.Time
	newID       model.IDGenerator
	recentLimit int
}

// Option configures a Vault.
type Option func(*Vault)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(v *Vault) { v.log = log }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Vault) { v.now = now }
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(gen model.IDGenerator) Option {
	return func(v *Vault) { v.newID = gen }
}

// WithKey sets the storage key the collection lives under.
func WithKey(key string) Option {
	return func(v *Vault) { v.key = key }
}

// WithRecentLimit sets the default GetRecent limit.
func WithRecentLimit(n int) Option {
	return func(v *Vault) {
		if n > 0 {
			v.recentLimit = n
		}
	}
}

// New creates a Vault backed by kv and loads the persisted collection.
func New(kv storage.KV, opts ...Option) *Vault {
	v := &Vault{
		kv:          kv,
		key:         storage.DefaultKey,
		log:         logger.Nop(),
		now:         time.Now,
		newID:       model.GenerateID,
		recentLimit: DefaultRecentLimit,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.LoadAll(context.Background())
	return v
}

// LoadAll replaces the in-memory collection with the persisted one and
// returns a copy. Missing, unreadable or malformed data loads as empty.
func (v *Vault) LoadAll(ctx context.Context) []model.Bookmark {
	records, err := v.read(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			v.log.Error("failed to load bookmarks", logger.String("key", v.key), logger.Error(err))
		}
		records = []model.Bookmark{}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = records
	return model.Clone(v.records)
}

// Reload re-reads the persisted collection, picking up external changes.
// The current collection is kept when the stored data cannot be read, so a
// half-written file never replaces good records.
func (v *Vault) Reload(ctx context.Context) {
	records, err := v.read(ctx)
	if err != nil {
		v.log.Warn("reload skipped, keeping current collection",
			logger.String("key", v.key), logger.Int("records", v.Len()), logger.Error(err))
		return
	}

	v.mu.Lock()
	v.records = records
	v.mu.Unlock()
	v.log.Info("collection reloaded", logger.Int("records", len(records)))
}

// storedBookmark decodes the timestamps separately so a bad date does not
// cost the whole record.
type storedBookmark struct {
	model.Bookmark
	DateAdded    json.RawMessage `json:"dateAdded"`
	DateModified json.RawMessage `json:"dateModified"`
}

func (v *Vault) read(ctx context.Context) ([]model.Bookmark, error) {
	data, err := v.kv.Get(ctx, v.key)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("stored bookmarks are not a JSON array: %w", err)
	}
	if raw == nil {
		return nil, errors.New("stored bookmarks are null")
	}

	records := make([]model.Bookmark, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var sb storedBookmark
		if err := json.Unmarshal(item, &sb); err != nil {
			v.log.Warn("skipping malformed bookmark", logger.Int("index", i), logger.Error(err))
			continue
		}
		b := sb.Bookmark
		if seen[b.ID] {
			v.log.Warn("skipping duplicate bookmark id", logger.String("id", b.ID), logger.Int("index", i))
			continue
		}
		seen[b.ID] = true

		if t, ok := v.parseTime(b.ID, "dateAdded", sb.DateAdded); ok {
			b.DateAdded = t
		}
		if t, ok := v.parseTime(b.ID, "dateModified", sb.DateModified); ok {
			b.DateModified = &t
		}
		records = append(records, b)
	}
	return records, nil
}

// parseTime decodes an optional timestamp. Unparseable values are logged and
// reported as absent.
func (v *Vault) parseTime(id, field string, raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		v.log.Warn("ignoring unparseable date", logger.String("id", id), logger.String("field", field), logger.Error(err))
		return time.Time{}, false
	}
	return t, true
}

// persist writes the whole collection. Failures are logged and remembered;
// the in-memory collection stays authoritative. Caller holds v.mu.
func (v *Vault) persist(ctx context.Context) {
	data, err := json.Marshal(v.records)
	if err == nil {
		err = v.kv.Set(ctx, v.key, data)
	}
	if err != nil {
		v.log.Error("failed to save bookmarks", logger.String("key", v.key), logger.Int("records", len(v.records)), logger.Error(err))
		v.persistErr = err
		return
	}
	v.persistErr = nil
}

// PersistErr returns the error from the most recent save, or nil.
func (v *Vault) PersistErr() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.persistErr
}

// GetAll returns a copy of every record in collection order.
func (v *Vault) GetAll() []model.Bookmark {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.Clone(v.records)
}

// Len returns the number of records.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.records)
}

// GetByID returns the record with id.
func (v *Vault) GetByID(id string) (model.Bookmark, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	i := model.FindByID(v.records, id)
	if i < 0 {
		return model.Bookmark{}, false
	}
	return v.records[i].Clone(), true
}

// GetByCategory returns the records whose category equals category.
func (v *Vault) GetByCategory(category string) []model.Bookmark {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.ByCategory(v.records, category)
}

// GetRecent returns up to limit records, newest first. limit <= 0 uses the
// configured default.
func (v *Vault) GetRecent(limit int) []model.Bookmark {
	if limit <= 0 {
		limit = v.recentLimit
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.Recent(v.records, limit)
}

// Categories returns the distinct categories in first-seen order.
func (v *Vault) Categories() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.Categories(v.records)
}

// Add creates a record from input, puts it first and persists.
func (v *Vault) Add(ctx context.Context, input model.BookmarkInput) model.Bookmark {
	v.mu.Lock()
	defer v.mu.Unlock()

	b := model.NewBookmark(v.uniqueID(nil), input, v.timestamp())
	v.records = append([]model.Bookmark{b}, v.records...)
	v.persist(ctx)

	v.log.Debug("bookmark added", logger.String("id", b.ID), logger.String("url", b.URL))
	return b.Clone()
}

// Update replaces the mutable fields of the record with id and persists.
// Returns false without writing when id is unknown.
func (v *Vault) Update(ctx context.Context, id string, input model.BookmarkInput) (model.Bookmark, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := model.FindByID(v.records, id)
	if i < 0 {
		return model.Bookmark{}, false
	}

	v.records[i] = v.records[i].Updated(input, v.timestamp())
	v.persist(ctx)

	v.log.Debug("bookmark updated", logger.String("id", id))
	return v.records[i].Clone(), true
}

// Delete removes the record with id. Persists only when something was removed.
func (v *Vault) Delete(ctx context.Context, id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := model.FindByID(v.records, id)
	if i < 0 {
		return false
	}

	v.records = append(v.records[:i:i], v.records[i+1:]...)
	v.persist(ctx)

	v.log.Debug("bookmark deleted", logger.String("id", id))
	return true
}

// Import puts records at the head of the collection in the order given, with
// a single save at the end, so an exported collection imports unchanged.
// Records whose URL is already present are skipped. Ids that are empty or
// taken are replaced and a zero DateAdded is stamped with now.
func (v *Vault) Import(ctx context.Context, records []model.Bookmark) (added, skipped int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	added, skipped = v.importLocked(records)
	if added > 0 {
		v.persist(ctx)
	}
	return added, skipped
}

func (v *Vault) importLocked(records []model.Bookmark) (added, skipped int) {
	batch := make([]model.Bookmark, 0, len(records))
	for _, r := range records {
		if model.HasURL(v.records, r.URL) || model.HasURL(batch, r.URL) {
			skipped++
			continue
		}

		b := model.NewBookmark(r.ID, r.Input(), r.DateAdded.UTC())
		if b.ID == "" || model.FindByID(v.records, b.ID) >= 0 || model.FindByID(batch, b.ID) >= 0 {
			b.ID = v.uniqueID(batch)
		}
		if r.DateModified != nil {
			t := r.DateModified.UTC()
			b.DateModified = &t
		}
		batch = append(batch, b)
	}

	// stamp back to front so the head of the batch is the newest
	for i := len(batch) - 1; i >= 0; i-- {
		if batch[i].DateAdded.IsZero() {
			batch[i].DateAdded = v.timestamp()
		}
	}

	v.records = append(batch, v.records...)
	return len(batch), skipped
}

// FirstRun reports whether the store is opened for the first time and
// records that it has been. A store that cannot be read counts as seen.
func (v *Vault) FirstRun(ctx context.Context) bool {
	_, err := v.kv.Get(ctx, storage.FirstRunKey)
	if !errors.Is(err, storage.ErrKeyNotFound) {
		if err != nil {
			v.log.Warn("failed to read first-run marker", logger.Error(err))
		}
		return false
	}
	if err := v.kv.Set(ctx, storage.FirstRunKey, []byte(`"done"`)); err != nil {
		v.log.Warn("failed to save first-run marker", logger.Error(err))
	}
	return true
}

// SeedIfEmpty adds the sample collection when the store holds no records.
// Returns the number of records added.
func (v *Vault) SeedIfEmpty(ctx context.Context) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.records) > 0 {
		return 0
	}

	samples := SampleBookmarks()
	records := make([]model.Bookmark, len(samples))
	for i, in := range samples {
		records[i] = model.NewBookmark("", in, time.Time{})
	}

	added, _ := v.importLocked(records)
	if added > 0 {
		v.persist(ctx)
		v.log.Info("seeded sample bookmarks", logger.Int("records", added))
	}
	return added
}

// Search returns the records whose name or URL contains query,
// case-insensitively. A blank query returns every record.
func (v *Vault) Search(query string) []model.Bookmark {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.Search(v.records, query)
}

// SortBy returns a sorted copy of records.
func (v *Vault) SortBy(records []model.Bookmark, criterion model.SortCriterion) []model.Bookmark {
	return model.SortBy(records, criterion)
}

// FilterByCategory returns records unchanged for model.FilterAll, otherwise
// the records in category filter.
func (v *Vault) FilterByCategory(records []model.Bookmark, filter string) []model.Bookmark {
	return model.FilterByCategory(records, filter)
}

// GenerateID returns a fresh id from the configured generator.
func (v *Vault) GenerateID() string {
	return v.newID()
}

// uniqueID draws ids until one is unused by the collection and pending.
// Caller holds v.mu.
func (v *Vault) uniqueID(pending []model.Bookmark) string {
	for {
		id := v.newID()
		if id != "" && model.FindByID(v.records, id) < 0 && model.FindByID(pending, id) < 0 {
			return id
		}
	}
}

// timestamp returns now in UTC at millisecond precision, matching what
// an ISO 8601 string round-trips.
func (v *Vault) timestamp() time.Time {
	return v.now().UTC().Truncate(time.Millisecond)
}
