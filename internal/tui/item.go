package tui

import "github.com/nikbrunner/lnk/internal/model"

// Item is a row of the link list.
type Item struct {
	Link *model.Link
}

// ID returns the link ID.
func (i Item) ID() string {
	return i.Link.ID
}

// Title returns a display title, falling back to the URL.
func (i Item) Title() string {
	if i.Link.Value.Title != "" {
		return i.Link.Value.Title
	}
	return i.Link.Value.URL
}

// URL returns the link URL.
func (i Item) URL() string {
	return i.Link.Value.URL
}

// OpensInNewTab reports whether the link's new-tab setting is on.
func (i Item) OpensInNewTab() bool {
	return i.Link.Value.OpensInNewTab()
}
