package model

import "time"

// Page types known to the catalogue.
const (
	PageTypePage = "page"
	PageTypePost = "post"
	PageTypeURL  = "url"
)

// Page is a catalogue entry that can be offered as a link suggestion.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPageParams holds parameters for creating a new Page.
type NewPageParams struct {
	Title string
	URL   string
	Type  string
}

// NewPage creates a Page with generated UUID and timestamp.
func NewPage(params NewPageParams) Page {
	pageType := params.Type
	if pageType == "" {
		pageType = PageTypePage
	}

	return Page{
		ID:        GenerateUUID(),
		Title:     params.Title,
		URL:       params.URL,
		Type:      pageType,
		CreatedAt: time.Now(),
	}
}

// LinkValue converts the page into a link value pointing at it.
func (p Page) LinkValue() LinkValue {
	return LinkValue{URL: p.URL, Title: p.Title}
}
