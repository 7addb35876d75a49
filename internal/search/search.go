package search

import (
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Page           *model.Page
	MatchedIndexes []int
	Score          int
}

// pageTargets implements fuzzy.Source over page titles and URLs.
type pageTargets []*model.Page

func (pt pageTargets) String(i int) string {
	return pt[i].Title + " " + pt[i].URL
}

func (pt pageTargets) Len() int {
	return len(pt)
}

// FuzzySearchPages searches pages by title and URL using fuzzy matching.
// Returns results sorted by match score (best first). MatchedIndexes refer
// to positions in "title url".
func FuzzySearchPages(pages []model.Page, query string) []SearchResult {
	if query == "" {
		return nil
	}

	targets := make(pageTargets, len(pages))
	for i := range pages {
		targets[i] = &pages[i]
	}

	matches := fuzzy.FindFrom(query, targets)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Page:           targets[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// RecentPages returns up to limit pages, newest first.
// A limit of zero or less returns every page.
func RecentPages(pages []model.Page, limit int) []*model.Page {
	n := len(pages)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*model.Page, 0, n)
	for i := len(pages) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, &pages[i])
	}
	return out
}

// Catalogue returns the catalogue pages followed by stored links whose URL
// is not already a page, so both can be searched together.
func Catalogue(store *model.Store) []model.Page {
	out := make([]model.Page, 0, len(store.Pages)+len(store.Links))
	seen := make(map[string]bool, len(store.Pages))
	for _, p := range store.Pages {
		out = append(out, p)
		seen[p.URL] = true
	}

	for _, l := range store.Links {
		if seen[l.Value.URL] || !l.Value.HasURL() {
			continue
		}
		seen[l.Value.URL] = true

		title := l.Value.Title
		if title == "" {
			title = l.Value.URL
		}
		out = append(out, model.Page{
			ID:        l.ID,
			Title:     title,
			URL:       l.Value.URL,
			Type:      model.PageTypeURL,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
