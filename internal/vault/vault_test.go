package vault_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/linkvault/internal/model"
	"github.com/nikbrunner/linkvault/internal/storage"
	"github.com/nikbrunner/linkvault/internal/vault"
)

var ctx = context.Background()

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// seqIDs returns a generator producing id-1, id-2, ...
func seqIDs() model.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newVault(t *testing.T, kv storage.KV) *vault.Vault {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	return vault.New(kv, vault.WithClock(stepClock()), vault.WithIDGenerator(seqIDs()))
}

func input(name, url, category string) model.BookmarkInput {
	return model.BookmarkInput{Name: name, URL: url, Category: category}
}

// failingKV fails every Set, optionally every Get too.
type failingKV struct {
	storage.KV
	failGet bool
	sets    int
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("backend unavailable")
	}
	return f.KV.Get(ctx, key)
}

func (f *failingKV) Set(context.Context, string, []byte) error {
	f.sets++
	return errors.New("quota exceeded")
}

// countingKV counts writes.
type countingKV struct {
	storage.KV
	sets int
}

func (c *countingKV) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.KV.Set(ctx, key, value)
}

func TestAdd_ThenGetByID(t *testing.T) {
	v := newVault(t, nil)

	added := v.Add(ctx, input("Go", "go.dev", "web"))
	got, ok := v.GetByID(added.ID)
	assert.Assert(t, ok)
	assert.DeepEqual(t, got, added)
}

func TestAdd_TrimsNormalizesAndPrepends(t *testing.T) {
	v := newVault(t, nil)

	v.Add(ctx, input("first", "https://first.example", "web"))
	r := v.Add(ctx, input(" Foo ", "example.com", "ai"))

	assert.Equal(t, r.Name, "Foo")
	assert.Equal(t, r.URL, "https://example.com")
	assert.Equal(t, r.Category, "ai")
	assert.Assert(t, r.ID != "")
	assert.Assert(t, r.DateModified == nil)
	assert.Assert(t, r.ThumbnailURL == nil)

	all := v.GetAll()
	assert.Equal(t, len(all), 2)
	assert.Equal(t, all[0].ID, r.ID)
}

func TestAdd_KeepsHTTPScheme(t *testing.T) {
	v := newVault(t, nil)
	r := v.Add(ctx, input("plain", "  http://insecure.example  ", "web"))
	assert.Equal(t, r.URL, "http://insecure.example")
}

func TestAdd_UniqueIDsOnCollision(t *testing.T) {
	ids := []string{"dup", "dup", "", "fresh"}
	i := 0
	gen := func() string {
		id := ids[i]
		i++
		return id
	}
	v := vault.New(storage.NewMemoryKV(), vault.WithIDGenerator(gen))

	a := v.Add(ctx, input("a", "a.example", "web"))
	b := v.Add(ctx, input("b", "b.example", "web"))
	assert.Equal(t, a.ID, "dup")
	assert.Equal(t, b.ID, "fresh")
}

func TestUpdate(t *testing.T) {
	v := newVault(t, nil)
	orig := v.Add(ctx, input("Old", "old.example", "web"))

	thumb := "https://img.example/x.png"
	updated, ok := v.Update(ctx, orig.ID, model.BookmarkInput{
		Name:         "  New  ",
		URL:          "new.example",
		Category:     "ai",
		ThumbnailURL: &thumb,
		Description:  "desc",
	})
	assert.Assert(t, ok)
	assert.Equal(t, updated.ID, orig.ID)
	assert.Equal(t, updated.DateAdded, orig.DateAdded)
	assert.Equal(t, updated.Name, "New")
	assert.Equal(t, updated.URL, "https://new.example")
	assert.Equal(t, updated.Category, "ai")
	assert.Equal(t, *updated.ThumbnailURL, thumb)
	assert.Equal(t, updated.Description, "desc")
	assert.Assert(t, updated.DateModified != nil)
	assert.Assert(t, updated.DateModified.After(orig.DateAdded))

	got, _ := v.GetByID(orig.ID)
	assert.DeepEqual(t, got, updated)
}

func TestUpdate_UnknownIDLeavesStateUnchanged(t *testing.T) {
	kv := &countingKV{KV: storage.NewMemoryKV()}
	v := newVault(t, kv)
	v.Add(ctx, input("a", "a.example", "web"))
	before := v.GetAll()
	writes := kv.sets

	_, ok := v.Update(ctx, "missing", input("x", "x.example", "ai"))
	assert.Assert(t, !ok)
	assert.DeepEqual(t, v.GetAll(), before)
	assert.Equal(t, kv.sets, writes)
}

func TestDelete(t *testing.T) {
	kv := &countingKV{KV: storage.NewMemoryKV()}
	v := newVault(t, kv)
	a := v.Add(ctx, input("a", "a.example", "web"))
	b := v.Add(ctx, input("b", "b.example", "web"))
	c := v.Add(ctx, input("c", "c.example", "web"))

	assert.Assert(t, v.Delete(ctx, b.ID))
	assert.Equal(t, v.Len(), 2)
	_, ok := v.GetByID(b.ID)
	assert.Assert(t, !ok)

	all := v.GetAll()
	assert.Equal(t, all[0].ID, c.ID)
	assert.Equal(t, all[1].ID, a.ID)

	writes := kv.sets
	assert.Assert(t, !v.Delete(ctx, "missing"))
	assert.Equal(t, v.Len(), 2)
	assert.Equal(t, kv.sets, writes, "unknown id must not persist")
}

func TestGetAll_ReturnsCopy(t *testing.T) {
	v := newVault(t, nil)
	v.Add(ctx, input("a", "a.example", "web"))

	all := v.GetAll()
	all[0].Name = "mutated"
	all = append(all, model.Bookmark{ID: "extra"})

	fresh := v.GetAll()
	assert.Equal(t, len(fresh), 1)
	assert.Equal(t, fresh[0].Name, "a")
}

func TestGetByCategory(t *testing.T) {
	v := newVault(t, nil)
	v.Add(ctx, input("a", "a.example", "web"))
	v.Add(ctx, input("b", "b.example", "ai"))
	v.Add(ctx, input("c", "c.example", "ai"))

	got := v.GetByCategory("ai")
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Name, "c")
	assert.Equal(t, got[1].Name, "b")
	assert.Equal(t, len(v.GetByCategory("AI")), 0)
}

func TestGetRecent(t *testing.T) {
	v := newVault(t, nil)
	for i := 0; i < 12; i++ {
		v.Add(ctx, input(fmt.Sprintf("site %d", i), fmt.Sprintf("s%d.example", i), "web"))
	}

	recent := v.GetRecent(1)
	assert.Equal(t, len(recent), 1)
	assert.Equal(t, recent[0].Name, "site 11")

	assert.Equal(t, len(v.GetRecent(0)), 10)
	assert.Equal(t, len(v.GetRecent(-3)), 10)
	assert.Equal(t, len(v.GetRecent(50)), 12)
}

func TestGetRecent_DoesNotReorderCollection(t *testing.T) {
	kv := storage.NewMemoryKV()
	payload := `[
		{"id":"old","name":"old","url":"https://old.example","category":"web","dateAdded":"2020-01-01T00:00:00.000Z","thumbnailUrl":null},
		{"id":"new","name":"new","url":"https://new.example","category":"web","dateAdded":"2024-01-01T00:00:00.000Z","thumbnailUrl":null}
	]`
	assert.NilError(t, kv.Set(ctx, storage.DefaultKey, []byte(payload)))
	v := newVault(t, kv)

	assert.Equal(t, v.GetRecent(1)[0].ID, "new")
	assert.Equal(t, v.GetAll()[0].ID, "old")
}

func TestSearch(t *testing.T) {
	v := newVault(t, nil)
	v.Add(ctx, input("GitHub", "github.com", "hacks"))
	v.Add(ctx, input("Go", "go.dev", "web"))
	v.Add(ctx, input("News", "news.ycombinator.com", "others"))

	assert.DeepEqual(t, v.Search(""), v.GetAll())
	assert.DeepEqual(t, v.Search("   "), v.GetAll())

	got := v.Search("  GITHUB ")
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Name, "GitHub")

	// url match
	got = v.Search("ycombinator")
	assert.Equal(t, len(got), 1)

	// every result contains the query
	for _, q := range []string{"g", "o", ".com", "https"} {
		for _, r := range v.Search(q) {
			assert.Check(t, strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.URL), q),
				"%q does not match %+v", q, r)
		}
	}

	assert.Equal(t, len(v.Search("nomatch")), 0)
}

func TestSortBy(t *testing.T) {
	v := newVault(t, nil)
	for _, name := range []string{"banana", "Apple", "cherry", "apple", "Éclair", "date"} {
		v.Add(ctx, input(name, name+".example", "web"))
	}
	all := v.GetAll()
	coll := collate.New(language.Und)

	asc := v.SortBy(all, model.SortNameAsc)
	for i := 1; i < len(asc); i++ {
		assert.Check(t, coll.CompareString(asc[i-1].Name, asc[i].Name) <= 0, "%q before %q", asc[i-1].Name, asc[i].Name)
	}
	desc := v.SortBy(all, model.SortNameDesc)
	assert.Equal(t, len(desc), len(asc))
	for i := range desc {
		assert.Equal(t, desc[i].ID, asc[len(asc)-1-i].ID)
	}

	newest := v.SortBy(all, model.SortDateNew)
	for i := 1; i < len(newest); i++ {
		assert.Check(t, !newest[i].DateAdded.After(newest[i-1].DateAdded))
	}
	oldest := v.SortBy(all, model.SortDateOld)
	for i := range oldest {
		assert.Equal(t, oldest[i].ID, newest[len(newest)-1-i].ID)
	}

	// unknown criterion keeps order, returns a new slice
	same := v.SortBy(all, "popularity")
	assert.DeepEqual(t, same, all)
	same[0].Name = "changed"
	assert.Check(t, all[0].Name != "changed")
}

func TestFilterByCategory(t *testing.T) {
	v := newVault(t, nil)
	v.Add(ctx, input("a", "a.example", "ai"))
	v.Add(ctx, input("b", "b.example", "web"))
	v.Add(ctx, input("c", "c.example", "ai"))
	all := v.GetAll()

	assert.DeepEqual(t, v.FilterByCategory(all, model.FilterAll), all)

	ai := v.FilterByCategory(all, "ai")
	assert.Equal(t, len(ai), 2)
	for _, r := range ai {
		assert.Equal(t, r.Category, "ai")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	kv := storage.NewFileKV(t.TempDir())
	v := newVault(t, kv)
	thumb := "https://img.example/t.png"
	a := v.Add(ctx, model.BookmarkInput{Name: "A", URL: "a.example", Category: "ai", ThumbnailURL: &thumb, Description: "first"})
	b := v.Add(ctx, input("B", "b.example", "web"))
	v.Update(ctx, b.ID, input("B2", "b2.example", "web"))
	assert.NilError(t, v.PersistErr())

	fresh := vault.New(kv)
	assert.DeepEqual(t, fresh.GetAll(), v.GetAll())

	got, ok := fresh.GetByID(a.ID)
	assert.Assert(t, ok)
	assert.Equal(t, *got.ThumbnailURL, thumb)
	assert.Equal(t, got.Description, "first")
}

func TestPersistence_JSONFieldNames(t *testing.T) {
	kv := storage.NewMemoryKV()
	v := newVault(t, kv)
	v.Add(ctx, input("A", "a.example", "ai"))

	data, err := kv.Get(ctx, storage.DefaultKey)
	assert.NilError(t, err)
	s := string(data)
	for _, field := range []string{`"id"`, `"name"`, `"url"`, `"category"`, `"dateAdded"`, `"thumbnailUrl":null`} {
		assert.Check(t, is.Contains(s, field))
	}
	assert.Check(t, !strings.Contains(s, "dateModified"))
	assert.Check(t, strings.HasPrefix(s, "["))
}

func TestLoadAll_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{{{"},
		{"object", `{"id":"x"}`},
		{"string", `"hello"`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			assert.NilError(t, kv.Set(ctx, storage.DefaultKey, []byte(tt.payload)))

			v := newVault(t, kv)
			assert.Equal(t, v.Len(), 0)
			assert.Equal(t, len(v.GetAll()), 0)

			// still usable
			v.Add(ctx, input("a", "a.example", "web"))
			assert.Equal(t, v.Len(), 1)
		})
	}
}

func TestLoadAll_ReadFailure(t *testing.T) {
	v := newVault(t, &failingKV{KV: storage.NewMemoryKV(), failGet: true})
	assert.Equal(t, v.Len(), 0)
}

func TestLoadAll_DropsDuplicateIDsAndMalformedRecords(t *testing.T) {
	kv := storage.NewMemoryKV()
	payload := `[
		{"id":"a","name":"first","url":"https://a.example","category":"web","dateAdded":"2024-01-01T00:00:00.000Z","thumbnailUrl":null},
		{"id":"a","name":"second","url":"https://a2.example","category":"web","dateAdded":"2024-01-02T00:00:00.000Z","thumbnailUrl":null},
		{"id":5,"name":"numeric id","url":"https://n.example"},
		{"id":"c","name":"ok","url":"https://c.example","category":"ai","dateAdded":"2024-01-03T00:00:00.000Z","thumbnailUrl":null}
	]`
	assert.NilError(t, kv.Set(ctx, storage.DefaultKey, []byte(payload)))

	v := newVault(t, kv)
	all := v.GetAll()
	assert.Equal(t, len(all), 2)
	assert.Equal(t, all[0].Name, "first")
	assert.Equal(t, all[1].ID, "c")
}

func TestLoadAll_KeepsRecordWithBadDate(t *testing.T) {
	kv := storage.NewMemoryKV()
	payload := `[
		{"id":"b","name":"bad date","url":"https://b.example","category":"web","dateAdded":"yesterday","dateModified":"soon"},
		{"id":"c","name":"ok","url":"https://c.example","category":"ai","dateAdded":"2024-01-03T00:00:00.000Z","dateModified":"2024-01-04T00:00:00.000Z"}
	]`
	assert.NilError(t, kv.Set(ctx, storage.DefaultKey, []byte(payload)))

	v := newVault(t, kv)
	all := v.GetAll()
	assert.Assert(t, is.Len(all, 2))
	assert.Equal(t, all[0].Name, "bad date")
	assert.Check(t, all[0].DateAdded.IsZero())
	assert.Check(t, all[0].DateModified == nil)
	assert.Check(t, all[1].DateAdded.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.Assert(t, all[1].DateModified != nil)
	assert.Check(t, all[1].DateModified.Equal(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))
}

func TestWriteFailure_IsBestEffort(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemoryKV()}
	v := newVault(t, kv)

	a := v.Add(ctx, input("a", "a.example", "web"))
	assert.Assert(t, a.ID != "")
	assert.ErrorContains(t, v.PersistErr(), "quota exceeded")

	got, ok := v.GetByID(a.ID)
	assert.Assert(t, ok)
	assert.Equal(t, got.Name, "a")

	_, ok = v.Update(ctx, a.ID, input("b", "b.example", "web"))
	assert.Assert(t, ok)
	assert.Assert(t, v.Delete(ctx, a.ID))
	assert.Equal(t, kv.sets, 3)
	assert.Equal(t, v.Len(), 0)
}

func TestPersistErr_ClearsAfterSuccessfulSave(t *testing.T) {
	mem := storage.NewMemoryKV()
	flaky := &flakyKV{KV: mem, fail: true}
	v := newVault(t, flaky)

	v.Add(ctx, input("a", "a.example", "web"))
	assert.Assert(t, v.PersistErr() != nil)

	flaky.fail = false
	v.Add(ctx, input("b", "b.example", "web"))
	assert.NilError(t, v.PersistErr())

	// both records reached storage with the second save
	assert.Equal(t, vault.New(mem).Len(), 2)
}

type flakyKV struct {
	storage.KV
	fail bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

func TestWithKey(t *testing.T) {
	kv := storage.NewMemoryKV()
	v := vault.New(kv, vault.WithKey("custom"))
	v.Add(ctx, input("a", "a.example", "web"))

	_, err := kv.Get(ctx, "custom")
	assert.NilError(t, err)
	_, err = kv.Get(ctx, storage.DefaultKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestWithRecentLimit(t *testing.T) {
	v := vault.New(storage.NewMemoryKV(), vault.WithRecentLimit(2))
	for i := 0; i < 5; i++ {
		v.Add(ctx, input(fmt.Sprint(i), fmt.Sprintf("%d.example", i), "web"))
	}
	assert.Equal(t, len(v.GetRecent(0)), 2)
	assert.Equal(t, len(v.GetRecent(4)), 4)
}

func TestCategories(t *testing.T) {
	v := newVault(t, nil)
	v.Add(ctx, input("a", "a.example", "web"))
	v.Add(ctx, input("b", "b.example", "ai"))
	v.Add(ctx, input("c", "c.example", "web"))
	v.Add(ctx, input("d", "d.example", "recipes"))

	assert.DeepEqual(t, v.Categories(), []string{"recipes", "web", "ai"})
}

func TestImport(t *testing.T) {
	kv := &countingKV{KV: storage.NewMemoryKV()}
	v := newVault(t, kv)
	v.Add(ctx, input("existing", "https://dup.example", "web"))
	writes := kv.sets

	added := time.Date(2019, 5, 1, 8, 0, 0, 0, time.UTC)
	added2, skipped := v.Import(ctx, []model.Bookmark{
		{Name: "dup", URL: "dup.example", Category: "web"},
		{ID: "keep-me", Name: " one ", URL: "one.example", Category: "ai", DateAdded: added},
		{ID: "id-1", Name: "two", URL: "https://two.example", Category: "web"},
	})
	assert.Equal(t, added2, 2)
	assert.Equal(t, skipped, 1)
	assert.Equal(t, kv.sets, writes+1, "import persists once")

	all := v.GetAll()
	assert.Equal(t, len(all), 3)
	assert.Equal(t, all[0].ID, "keep-me")
	assert.Equal(t, all[0].Name, "one")
	assert.Equal(t, all[0].URL, "https://one.example")
	assert.Assert(t, all[0].DateAdded.Equal(added))
	assert.Equal(t, all[1].Name, "two")
	assert.Assert(t, all[1].ID != "id-1", "colliding id must be replaced")
	assert.Assert(t, !all[1].DateAdded.IsZero())
	assert.Equal(t, all[2].Name, "existing")

	// nothing new: no write
	writes = kv.sets
	n, s := v.Import(ctx, []model.Bookmark{{Name: "again", URL: "one.example"}})
	assert.Equal(t, n, 0)
	assert.Equal(t, s, 1)
	assert.Equal(t, kv.sets, writes)
}

func TestImport_KeepsExportOrder(t *testing.T) {
	src := newVault(t, nil)
	src.Add(ctx, input("first", "first.example", "web"))
	src.Add(ctx, input("second", "second.example", "web"))
	src.Add(ctx, input("third", "third.example", "ai"))

	data, err := json.Marshal(src.GetAll())
	assert.NilError(t, err)
	var exported []model.Bookmark
	assert.NilError(t, json.Unmarshal(data, &exported))

	dst := vault.New(storage.NewMemoryKV())
	added, skipped := dst.Import(ctx, exported)
	assert.Equal(t, added, 3)
	assert.Equal(t, skipped, 0)

	names := func(records []model.Bookmark) []string {
		out := make([]string, len(records))
		for i, b := range records {
			out[i] = b.Name
		}
		return out
	}
	assert.DeepEqual(t, names(dst.GetAll()), []string{"third", "second", "first"})
	assert.DeepEqual(t, names(dst.GetAll()), names(src.GetAll()))
}

func TestImport_StampsUndatedNewestFirst(t *testing.T) {
	v := newVault(t, nil)
	v.Import(ctx, []model.Bookmark{
		{Name: "a", URL: "a.example"},
		{Name: "b", URL: "b.example"},
		{Name: "a again", URL: "https://a.example"},
	})

	all := v.GetAll()
	assert.Assert(t, is.Len(all, 2))
	assert.Equal(t, all[0].Name, "a")
	assert.Assert(t, all[0].DateAdded.After(all[1].DateAdded))
	assert.Equal(t, v.GetRecent(1)[0].Name, "a")
}

func TestFirstRun(t *testing.T) {
	kv := storage.NewMemoryKV()
	v := newVault(t, kv)

	assert.Check(t, v.FirstRun(ctx))
	assert.Check(t, !v.FirstRun(ctx), "second call should see the marker")
	assert.Check(t, !vault.New(kv).FirstRun(ctx), "marker survives a new vault")

	// the marker is not part of the collection
	assert.Equal(t, v.Len(), 0)
	_, err := kv.Get(ctx, storage.DefaultKey)
	assert.Check(t, errors.Is(err, storage.ErrKeyNotFound))
}

func TestFirstRun_UnreadableStoreCountsAsSeen(t *testing.T) {
	v := newVault(t, &failingKV{KV: storage.NewMemoryKV(), failGet: true})
	assert.Check(t, !v.FirstRun(ctx))
}

func TestSeedIfEmpty(t *testing.T) {
	v := newVault(t, nil)

	n := v.SeedIfEmpty(ctx)
	assert.Equal(t, n, len(vault.SampleBookmarks()))
	assert.Equal(t, v.Len(), n)

	ai := v.GetByCategory(model.CategoryAI)
	assert.Assert(t, len(ai) > 0)
	for _, b := range v.GetAll() {
		assert.Check(t, strings.HasPrefix(b.URL, "https://"))
		assert.Check(t, b.HasThumbnail())
	}

	// second call is a no-op
	assert.Equal(t, v.SeedIfEmpty(ctx), 0)
	assert.Equal(t, v.Len(), n)
}

func TestGenerateID(t *testing.T) {
	v := vault.New(storage.NewMemoryKV())
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := v.GenerateID()
		assert.Assert(t, id != "")
		assert.Assert(t, !seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestReload_PicksUpExternalWrites(t *testing.T) {
	kv := storage.NewMemoryKV()
	v := newVault(t, kv)
	other := vault.New(kv)
	other.Add(ctx, input("external", "ext.example", "web"))

	assert.Equal(t, v.Len(), 0)
	v.Reload(ctx)
	assert.Equal(t, v.Len(), 1)
}

func TestReload_KeepsCollectionOnCorruptData(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"truncated", `[{"id":"x","name":"a"`},
		{"not an array", `{"id":"x"}`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			v := newVault(t, kv)
			v.Add(ctx, input("a", "a.example", "web"))
			v.Add(ctx, input("b", "b.example", "web"))
			v.Add(ctx, input("c", "c.example", "ai"))

			assert.NilError(t, kv.Set(ctx, storage.DefaultKey, []byte(tt.payload)))
			v.Reload(ctx)
			assert.Equal(t, v.Len(), 3)

			// the next save writes the whole collection back
			v.Add(ctx, input("d", "d.example", "web"))
			data, err := kv.Get(ctx, storage.DefaultKey)
			assert.NilError(t, err)
			var stored []model.Bookmark
			assert.NilError(t, json.Unmarshal(data, &stored))
			assert.Equal(t, len(stored), 4)
		})
	}
}

func TestReload_KeepsCollectionOnReadFailure(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemoryKV()}
	assert.NilError(t, kv.KV.Set(ctx, storage.DefaultKey,
		[]byte(`[{"id":"a","name":"a","url":"https://a.example","category":"web","dateAdded":"2024-01-01T00:00:00Z"}]`)))
	v := newVault(t, kv)
	assert.Equal(t, v.Len(), 1)

	kv.failGet = true
	v.Reload(ctx)
	assert.Equal(t, v.Len(), 1)
}

func TestConcurrentAccess(t *testing.T) {
	v := vault.New(storage.NewMemoryKV())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := v.Add(ctx, input(fmt.Sprint(i), fmt.Sprintf("%d.example", i), "web"))
			v.Search("example")
			v.GetRecent(5)
			if i%2 == 0 {
				v.Delete(ctx, b.ID)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, v.Len(), 10)
}
