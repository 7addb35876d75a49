package linkeditor

import (
	"strings"

	"github.com/nikbrunner/lnk/internal/model"
)

// Mode is the coarse state of the editor.
type Mode int

const (
	ModeEditing Mode = iota
	ModeViewing
	ModeCreatingSuggestion
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeViewing:
		return "viewing"
	default:
		return "creating"
	}
}

// State is the input of DeriveFlags.
type State struct {
	Value            *model.LinkValue
	IsEditingLink    bool
	IsCreatingPage   bool
	DraftURL         string
	HasRemoveHandler bool
	SettingsCount    int
	HasTextControl   bool
}

// Flags are display decisions derived from State. They are recomputed on
// every render and never stored.
type Flags struct {
	CurrentInputIsEmpty    bool
	ShownUnlinkControl     bool
	ShowSettingsDrawer     bool
	ShowTextControl        bool
	ShouldShowEditControls bool
	ShouldShowLinkPreview  bool
}

// DeriveFlags computes the display flags for s.
func DeriveFlags(s State) Flags {
	hasValue := s.Value != nil
	committedURL := ""
	if hasValue {
		committedURL = s.Value.URL
	}

	return Flags{
		CurrentInputIsEmpty: strings.TrimSpace(s.DraftURL) == "",
		ShownUnlinkControl:  s.HasRemoveHandler && hasValue && !s.IsEditingLink && !s.IsCreatingPage,
		ShowSettingsDrawer:  s.SettingsCount > 0,
		// No title editing before a URL is committed, or the title would
		// be orphaned.
		ShowTextControl:        strings.TrimSpace(committedURL) != "" && s.HasTextControl,
		ShouldShowEditControls: (s.IsEditingLink || !hasValue) && !s.IsCreatingPage,
		ShouldShowLinkPreview:  hasValue && !s.IsEditingLink && !s.IsCreatingPage,
	}
}
