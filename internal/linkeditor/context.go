package linkeditor

import (
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/suggest"
)

// Context is the state bundle handed to every sub-widget renderer and slot.
type Context struct {
	Value         *model.LinkValue
	Mode          Mode
	Flags         Flags
	DraftURL      string
	DraftTitle    string
	Suggestions   []suggest.Suggestion
	SuggestionIdx int
	CreateError   string
	Settings      []model.Setting
	Preview       *preview.Metadata
	Styles        Styles
	Width         int
}

// SlotName identifies where a slot is rendered.
type SlotName int

const (
	SlotFormAfter    SlotName = iota // below the edit form
	SlotPreviewAfter                 // below the link preview
	SlotDrawerAfter                  // below the settings drawer
)

// Slot is extra content rendered at a named position of the editor.
type Slot struct {
	Name   SlotName
	Render func(Context) string
}
