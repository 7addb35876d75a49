package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/storage"
	"gotest.tools/v3/assert"
)

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lnk.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	now := time.Now().Truncate(time.Second) // SQLite RFC3339 loses sub-second precision

	store := &model.Store{
		Pages: []model.Page{
			{ID: "p1", Title: "About", URL: "https://example.com/about", Type: model.PageTypePage, CreatedAt: now},
		},
		Links: []model.Link{
			{
				ID: "l1",
				Value: model.LinkValue{
					URL:      "https://example.com",
					Title:    "Example",
					Settings: map[string]any{model.SettingOpensInNewTab: true},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
			{
				ID:        "l2",
				Value:     model.LinkValue{URL: "https://plain.example"},
				CreatedAt: now.Add(time.Second),
				UpdatedAt: now.Add(time.Second),
			},
		},
	}

	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	assert.Equal(t, len(loaded.Pages), 1)
	assert.Equal(t, len(loaded.Links), 2)

	p := loaded.Pages[0]
	assert.Equal(t, p.Title, "About")
	assert.Equal(t, p.Type, model.PageTypePage)
	assert.Assert(t, p.CreatedAt.Equal(now))

	l := loaded.Links[0]
	assert.Equal(t, l.Value.URL, "https://example.com")
	assert.Equal(t, l.Value.Title, "Example")
	assert.Assert(t, l.Value.OpensInNewTab())
	assert.Assert(t, loaded.Links[1].Value.Settings == nil)
}

func TestSQLiteStorage_SaveReplacesContents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lnk.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	first := &model.Store{
		Pages: []model.Page{{ID: "p1", Title: "One", URL: "https://one.com", Type: model.PageTypePage}},
		Links: []model.Link{},
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	second := &model.Store{
		Pages: []model.Page{{ID: "p2", Title: "Two", URL: "https://two.com", Type: model.PageTypePost}},
		Links: []model.Link{},
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Pages) != 1 || loaded.Pages[0].ID != "p2" {
		t.Errorf("expected only p2 after second save, got %+v", loaded.Pages)
	}
}

func TestSQLiteStorage_ReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lnk.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.Save(&model.Store{
		Pages: []model.Page{},
		Links: []model.Link{{ID: "l1", Value: model.LinkValue{URL: "https://example.com"}}},
	}); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	s.Close()

	reopened, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer reopened.Close()

	version, err := reopened.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	assert.Equal(t, version, 2)

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	assert.Equal(t, len(loaded.Links), 1)
}

func TestSQLiteStorage_ImplementsStorage(t *testing.T) {
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "lnk.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer s.Close()

	var _ storage.Storage = s
	var _ storage.Storage = storage.NewJSONStorage("unused.json")
}
