// Package linkeditor implements an embeddable bubbletea widget that edits a
// single link value: URL, title and behaviour settings.
//
// The editor is either editing (URL and title inputs plus suggestions) or
// viewing (a preview with edit, copy and unlink actions). While a page
// is being created from a suggestion both are suppressed. Committed values
// are reported through OnChange; removal through OnRemove.
package linkeditor

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/focus"
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/suggest"
)

const defaultCreateText = "Create: "

// Params configures an Editor.
type Params struct {
	Value              *model.LinkValue
	ForceIsEditingLink *bool
	Settings           []model.Setting

	OnChange func(model.LinkValue) tea.Cmd
	OnRemove func() tea.Cmd // nil hides the unlink control
	OnCancel func() tea.Cmd

	NoDirectEntry          bool
	ShowSuggestions        bool
	ShowInitialSuggestions bool
	WithCreateSuggestion   bool
	NoURLSuggestion        bool
	HasTextControl         bool
	HasRichPreviews        bool

	SuggestionsQuery           suggest.Query
	CreateSuggestionButtonText string

	Suggestions suggest.Provider // optional
	Focus       focus.Manager    // defaults to focus.Tabbable
	Previews    preview.Fetcher  // optional, used with HasRichPreviews

	Slots  []Slot
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
	Width  int
}

// Editor is the link editing widget.
type Editor struct {
	params Params
	keys   KeyMap
	styles Styles
	focus  focus.Manager
	width  int

	value              *model.LinkValue
	forceIsEditingLink *bool
	isEditingLink      bool

	urlInput  textinput.Model
	textInput textinput.Model

	creator       suggest.Creator
	suggestions   []suggest.Suggestion
	suggestionIdx int // -1 = none highlighted

	editButton   focus.Button
	copyButton   focus.Button
	unlinkButton focus.Button
	root         focus.Region

	// Last state the focus effect ran for
	lastFocusKey focusKey
	// Set when editing stops while a widget holds focus, cleared by the
	// next focus effect.
	endingEditWithFocus bool

	previewURL     string
	previewMeta    *preview.Metadata
	previewLoading bool

	notice string
}

// New creates an Editor. The focus effect does not run here: initial focus
// belongs to the host, see Focus.
func New(params Params) Editor {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	manager := params.Focus
	if manager == nil {
		manager = focus.Tabbable{}
	}

	width := params.Width
	if width <= 0 {
		width = 40
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "Search or type URL"
	urlInput.Prompt = ""
	urlInput.CharLimit = 500
	urlInput.Width = width

	textInput := textinput.New()
	textInput.Placeholder = "Link text"
	textInput.Prompt = ""
	textInput.CharLimit = 200
	textInput.Width = width

	e := Editor{
		params:        params,
		keys:          keys,
		styles:        styles,
		focus:         manager,
		width:         width,
		urlInput:      urlInput,
		textInput:     textInput,
		suggestionIdx: -1,
		editButton:    focus.NewButton("Edit"),
		copyButton:    focus.NewButton("Copy"),
		unlinkButton:  focus.NewButton("Unlink"),
	}
	e.copyButton.SetDisabled(clipboard.Unsupported)

	e.setValue(params.Value)
	e.forceIsEditingLink = params.ForceIsEditingLink
	if params.ForceIsEditingLink != nil {
		e.isEditingLink = *params.ForceIsEditingLink
	} else {
		e.isEditingLink = params.Value == nil || !params.Value.HasURL()
	}

	if e.isEditingLink {
		e.refreshSuggestions()
	}
	e.lastFocusKey = e.focusKey()

	return e
}

// Init returns the command fetching the rich preview of the initial value.
func (e Editor) Init() tea.Cmd {
	if !e.wantsPreview() {
		return nil
	}
	return e.fetchPreview(e.value.URL)
}

// Value returns the committed value, or nil.
func (e Editor) Value() *model.LinkValue {
	return e.value
}

// IsEditingLink reports whether the editor is in editing mode.
func (e Editor) IsEditingLink() bool {
	return e.isEditingLink
}

// IsCreatingPage reports whether a page creation is in flight.
func (e Editor) IsCreatingPage() bool {
	return e.creator.IsCreating()
}

// CreatePageErrorMessage returns the message of the last failed creation.
func (e Editor) CreatePageErrorMessage() string {
	return e.creator.ErrorMessage()
}

// Mode returns the current mode. Creation overlays the other two.
func (e Editor) Mode() Mode {
	flags := e.Flags()
	switch {
	case e.creator.IsCreating():
		return ModeCreatingSuggestion
	case flags.ShouldShowEditControls:
		return ModeEditing
	default:
		return ModeViewing
	}
}

// DraftURL returns the URL input text.
func (e Editor) DraftURL() string {
	return e.urlInput.Value()
}

// DraftTitle returns the title input text.
func (e Editor) DraftTitle() string {
	return e.textInput.Value()
}

// Suggestions returns the current suggestion list.
func (e Editor) Suggestions() []suggest.Suggestion {
	return e.suggestions
}

// SuggestionIndex returns the highlighted suggestion, or -1.
func (e Editor) SuggestionIndex() int {
	return e.suggestionIdx
}

// Flags returns the display flags for the current state.
func (e Editor) Flags() Flags {
	return DeriveFlags(State{
		Value:            e.value,
		IsEditingLink:    e.isEditingLink,
		IsCreatingPage:   e.creator.IsCreating(),
		DraftURL:         e.urlInput.Value(),
		HasRemoveHandler: e.params.OnRemove != nil,
		SettingsCount:    len(e.params.Settings),
		HasTextControl:   e.params.HasTextControl,
	})
}

// Notice returns the transient status line (copy results and similar).
func (e Editor) Notice() string {
	return e.notice
}

// SetWidth sets the render width of the inputs.
func (e *Editor) SetWidth(width int) {
	if width <= 0 {
		return
	}
	e.width = width
	e.urlInput.Width = width
	e.textInput.Width = width
}

// SetValue replaces the committed value from upstream and resets both
// drafts to it.
func (e *Editor) SetValue(v *model.LinkValue) tea.Cmd {
	e.setValue(v)
	if e.isEditingLink {
		e.refreshSuggestions()
	}
	return e.afterTransition()
}

func (e *Editor) setValue(v *model.LinkValue) {
	if v != nil {
		clone := v.Clone()
		v = &clone
	}
	e.value = v
	e.resetDrafts()
}

func (e *Editor) resetDrafts() {
	url, title := "", ""
	if e.value != nil {
		url, title = e.value.URL, e.value.Title
	}
	e.urlInput.SetValue(url)
	e.textInput.SetValue(title)
}

// SetForceIsEditingLink updates the external override. A changed, non-nil
// flag switches the mode to its value.
func (e *Editor) SetForceIsEditingLink(force *bool) tea.Cmd {
	prev := e.forceIsEditingLink
	e.forceIsEditingLink = force
	if force == nil || (prev != nil && *prev == *force) {
		return nil
	}

	e.isEditingLink = *force
	if e.isEditingLink {
		e.refreshSuggestions()
	}
	return e.afterTransition()
}

// Update handles a message and returns the updated editor.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	switch msg := msg.(type) {
	case suggest.CreateResultMsg:
		cmd := e.handleCreateResult(msg)
		return e, cmd

	case richPreviewMsg:
		if e.value != nil && msg.url == e.value.URL {
			e.previewURL = msg.url
			e.previewLoading = false
			meta := msg.meta
			e.previewMeta = &meta
		}
		return e, nil

	case copiedMsg:
		if msg.err != nil {
			e.notice = "Copy failed: " + msg.err.Error()
		} else {
			e.notice = "Copied URL to clipboard"
		}
		return e, nil

	case tea.KeyMsg:
		e.notice = ""
		if e.creator.IsCreating() {
			// Edit and preview UI are suppressed while creating
			return e, nil
		}

		flags := e.Flags()
		if flags.ShouldShowEditControls {
			return e.updateEditing(msg, flags)
		}
		if flags.ShouldShowLinkPreview {
			return e.updateViewing(msg, flags)
		}
		return e, nil
	}

	// Other messages (cursor blink) go to the focused input
	return e.updateInputs(msg)
}

func (e Editor) updateEditing(msg tea.KeyMsg, flags Flags) (Editor, tea.Cmd) {
	switch {
	case key.Matches(msg, e.keys.Submit):
		if e.suggestionIdx >= 0 && e.suggestionIdx < len(e.suggestions) {
			cmd := e.selectSuggestion(e.suggestions[e.suggestionIdx])
			return e, cmd
		}
		if flags.CurrentInputIsEmpty || e.params.NoDirectEntry {
			return e, nil
		}
		cmd := e.submit()
		return e, cmd

	case key.Matches(msg, e.keys.Cancel):
		cmd := e.cancel()
		return e, cmd

	case key.Matches(msg, e.keys.NextSuggestion):
		if e.suggestionIdx < len(e.suggestions)-1 {
			e.suggestionIdx++
		}
		return e, nil

	case key.Matches(msg, e.keys.PrevSuggestion):
		if e.suggestionIdx >= 0 {
			e.suggestionIdx--
		}
		return e, nil

	case key.Matches(msg, e.keys.NextField):
		cmd := focus.Cycle(e.focus, &e, 1)
		return e, cmd

	case key.Matches(msg, e.keys.PrevField):
		cmd := focus.Cycle(e.focus, &e, -1)
		return e, cmd
	}

	before := e.urlInput.Value()
	e, cmd := e.updateInputs(msg)
	if e.urlInput.Value() != before {
		e.refreshSuggestions()
	}
	return e, cmd
}

func (e Editor) updateViewing(msg tea.KeyMsg, flags Flags) (Editor, tea.Cmd) {
	switch {
	case key.Matches(msg, e.keys.Edit):
		cmd := e.startEditing()
		return e, cmd

	case key.Matches(msg, e.keys.Unlink):
		if flags.ShownUnlinkControl {
			return e, e.params.OnRemove()
		}

	case key.Matches(msg, e.keys.Copy):
		cmd := e.copyURL()
		return e, cmd

	case key.Matches(msg, e.keys.ToggleSetting):
		if flags.ShowSettingsDrawer && len(msg.Runes) == 1 {
			cmd := e.toggleSetting(int(msg.Runes[0] - '1'))
			return e, cmd
		}

	case key.Matches(msg, e.keys.Submit):
		// Activate the focused action
		switch {
		case e.copyButton.Focused() && !e.copyButton.Disabled():
			cmd := e.copyURL()
			return e, cmd
		case e.unlinkButton.Focused() && flags.ShownUnlinkControl:
			return e, e.params.OnRemove()
		default:
			cmd := e.startEditing()
			return e, cmd
		}

	case key.Matches(msg, e.keys.Cancel):
		if e.params.OnCancel != nil {
			return e, e.params.OnCancel()
		}

	case key.Matches(msg, e.keys.NextField):
		cmd := focus.Cycle(e.focus, &e, 1)
		return e, cmd

	case key.Matches(msg, e.keys.PrevField):
		cmd := focus.Cycle(e.focus, &e, -1)
		return e, cmd
	}

	return e, nil
}

// updateInputs forwards msg to both inputs; unfocused inputs ignore keys.
func (e Editor) updateInputs(msg tea.Msg) (Editor, tea.Cmd) {
	var urlCmd, textCmd tea.Cmd
	e.urlInput, urlCmd = e.urlInput.Update(msg)
	e.textInput, textCmd = e.textInput.Update(msg)
	return e, tea.Batch(urlCmd, textCmd)
}

// refreshSuggestions rebuilds the suggestion list from the URL draft.
func (e *Editor) refreshSuggestions() {
	e.suggestions = nil
	e.suggestionIdx = -1

	if !e.params.ShowSuggestions {
		return
	}

	query := strings.TrimSpace(e.urlInput.Value())
	if query == "" && !e.params.ShowInitialSuggestions {
		return
	}

	isURL := suggest.IsURLLike(query)
	if isURL {
		if !e.params.NoURLSuggestion && !e.params.NoDirectEntry {
			url := suggest.NormalizeURL(query)
			e.suggestions = append(e.suggestions, suggest.Suggestion{
				Kind:  suggest.KindURL,
				Title: url,
				URL:   url,
				Type:  model.PageTypeURL,
			})
		}
		return
	}

	if e.params.Suggestions != nil {
		e.suggestions = append(e.suggestions, e.params.Suggestions.Search(query, e.params.SuggestionsQuery)...)
	}

	if query != "" && e.params.WithCreateSuggestion && e.params.Suggestions != nil {
		e.suggestions = append(e.suggestions, suggest.Suggestion{
			Kind:  suggest.KindCreate,
			Title: query,
			Type:  model.PageTypePage,
		})
	}
}

func (e Editor) createText() string {
	if e.params.CreateSuggestionButtonText != "" {
		return e.params.CreateSuggestionButtonText
	}
	return defaultCreateText
}
