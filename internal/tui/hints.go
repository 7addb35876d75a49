package tui

import (
	"strings"

	"github.com/nikbrunner/lnk/internal/linkeditor"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, n/p, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move n/p:page"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter apply  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeEditor:
		return a.getEditorHints()
	case ModeConfirmDelete:
		return HintSet{
			Action: []Hint{{Key: "y/Enter", Desc: "delete"}},
			System: []Hint{{Key: "n/Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for the link list.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	if a.PageCount() > 1 {
		hints.Nav = append(hints.Nav, Hint{Key: "n/p", Desc: "page"})
	}
	if len(a.items) > 0 {
		hints.Action = []Hint{{Key: "Enter", Desc: "open"}, {Key: "Y", Desc: "yank"}}
		hints.Edit = append(hints.Edit, Hint{Key: "d", Desc: "del"})
	}
	return hints
}

// getEditorHints follows the editor's own mode.
func (a App) getEditorHints() HintSet {
	ed := a.editor.Editor
	switch ed.Mode() {
	case linkeditor.ModeCreatingSuggestion:
		return HintSet{
			System: []Hint{{Key: "", Desc: "creating page..."}},
		}

	case linkeditor.ModeEditing:
		hints := HintSet{
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
		if len(ed.Suggestions()) > 0 {
			hints.Nav = append(hints.Nav, Hint{Key: "↑/↓", Desc: "suggest"})
		}
		if ed.Flags().ShowTextControl {
			hints.Nav = append(hints.Nav, Hint{Key: "Tab", Desc: "field"})
		}
		return hints

	default:
		flags := ed.Flags()
		hints := HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "focus"}},
			Action: []Hint{{Key: "e", Desc: "edit"}, {Key: "y", Desc: "copy"}},
			System: []Hint{{Key: "Esc", Desc: "close"}},
		}
		if flags.ShownUnlinkControl {
			hints.Edit = append(hints.Edit, Hint{Key: "u", Desc: "unlink"})
		}
		if flags.ShowSettingsDrawer {
			hints.Edit = append(hints.Edit, Hint{Key: "1-9", Desc: "setting"})
		}
		return hints
	}
}
