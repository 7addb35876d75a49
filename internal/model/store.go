package model

import "time"

// Store holds the page catalogue and the stored links.
type Store struct {
	Pages []Page `json:"pages"`
	Links []Link `json:"links"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Pages: []Page{},
		Links: []Link{},
	}
}

// GetPageByID finds a page by ID, returns nil if not found.
func (s *Store) GetPageByID(id string) *Page {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return &s.Pages[i]
		}
	}
	return nil
}

// GetLinkByID finds a link by ID, returns nil if not found.
func (s *Store) GetLinkByID(id string) *Link {
	for i := range s.Links {
		if s.Links[i].ID == id {
			return &s.Links[i]
		}
	}
	return nil
}

// HasPageURL reports whether a page with the given URL exists.
func (s *Store) HasPageURL(url string) bool {
	for _, p := range s.Pages {
		if p.URL == url {
			return true
		}
	}
	return false
}

// AddPage appends a page to the catalogue.
func (s *Store) AddPage(p Page) {
	s.Pages = append(s.Pages, p)
}

// UpsertLink replaces the value of the link with the given ID, or appends a
// new link when id is empty or unknown. Returns the stored link.
func (s *Store) UpsertLink(id string, value LinkValue) Link {
	if id != "" {
		if l := s.GetLinkByID(id); l != nil {
			l.Value = value
			l.UpdatedAt = time.Now()
			return *l
		}
	}

	link := NewLink(value)
	if id != "" {
		link.ID = id
	}
	s.Links = append(s.Links, link)
	return link
}

// RemoveLink deletes the link with the given ID. Returns false if not found.
func (s *Store) RemoveLink(id string) bool {
	for i := range s.Links {
		if s.Links[i].ID == id {
			s.Links = append(s.Links[:i], s.Links[i+1:]...)
			return true
		}
	}
	return false
}

// ImportMerge adds pages to the catalogue, skipping URLs already present.
// Returns the number of pages added and skipped.
func (s *Store) ImportMerge(pages []Page) (added, skipped int) {
	seen := make(map[string]bool, len(s.Pages))
	for _, p := range s.Pages {
		seen[p.URL] = true
	}

	for _, p := range pages {
		if seen[p.URL] {
			skipped++
			continue
		}
		seen[p.URL] = true
		s.Pages = append(s.Pages, p)
		added++
	}

	return added, skipped
}
