package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/lnk/internal/importer"
	"github.com/nikbrunner/lnk/internal/model"
)

func TestParseHTML_SinglePage(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	pages, err := importer.ParseHTMLPages(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	p := pages[0]
	if p.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", p.Title)
	}
	if p.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", p.URL)
	}
	if p.Type != model.PageTypeURL {
		t.Errorf("expected type %q, got %q", model.PageTypeURL, p.Type)
	}
	if p.ID == "" {
		t.Error("expected non-empty ID")
	}
	if !p.CreatedAt.Equal(time.Unix(1234567890, 0)) {
		t.Errorf("expected CreatedAt from ADD_DATE, got %v", p.CreatedAt)
	}
}

func TestParseHTML_FlattensFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3>React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com">Google</A>
</DL><p>`

	pages, err := importer.ParseHTMLPages(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"React Docs", "GitHub", "Google"}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(pages))
	}
	for i, title := range want {
		if pages[i].Title != title {
			t.Errorf("page %d: expected %q, got %q", i, title, pages[i].Title)
		}
	}
}

func TestParseHTML_SkipsAnchorsWithoutHref(t *testing.T) {
	html := `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="   ">Blank</A>
    <DT><A HREF="https://go.dev"></A>
</DL><p>`

	pages, err := importer.ParseHTMLPages(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Title != "https://go.dev" {
		t.Errorf("expected URL as title fallback, got %q", pages[0].Title)
	}
}

func TestParseHTML_Empty(t *testing.T) {
	pages, err := importer.ParseHTMLPages(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %d", len(pages))
	}
}

func TestParseHTML_MergeSkipsDuplicates(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://go.dev">Go</A>
    <DT><A HREF="https://go.dev">Go again</A>
    <DT><A HREF="https://pkg.go.dev">Packages</A>
</DL><p>`

	pages, err := importer.ParseHTMLPages(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := model.NewStore()
	store.AddPage(model.Page{ID: "existing", Title: "Packages", URL: "https://pkg.go.dev"})

	added, skipped := store.ImportMerge(pages)
	if added != 1 || skipped != 2 {
		t.Errorf("expected 1 added and 2 skipped, got %d and %d", added, skipped)
	}
	if len(store.Pages) != 2 {
		t.Errorf("expected 2 pages in store, got %d", len(store.Pages))
	}
}
