package linkeditor

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/suggest"
)

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	err error
}

// selectSuggestion commits a suggestion, or starts creating a page for a
// create entry.
func (e *Editor) selectSuggestion(s suggest.Suggestion) tea.Cmd {
	if s.Kind == suggest.KindCreate {
		if e.params.Suggestions == nil {
			return nil
		}
		var createCmd tea.Cmd
		e.creator, createCmd = e.creator.Begin(e.params.Suggestions, s.Title)
		return tea.Batch(createCmd, e.afterTransition())
	}

	return e.commitSuggestion(s.LinkValue())
}

// commitSuggestion merges picked with the committed value: the draft title
// wins when set, settings are kept.
func (e *Editor) commitSuggestion(picked model.LinkValue) tea.Cmd {
	next := model.LinkValue{}
	if e.value != nil {
		next = e.value.Clone()
	}
	next.URL = picked.URL
	next.Title = picked.Title
	if title := strings.TrimSpace(e.textInput.Value()); title != "" {
		next.Title = title
	}

	return tea.Batch(e.commit(next), e.stopEditing())
}

// submit commits the drafts. Only url and title are compared, so submitting
// an unchanged value does not notify but still ends editing.
func (e *Editor) submit() tea.Cmd {
	rawURL, rawTitle := e.urlInput.Value(), e.textInput.Value()
	url, title := normalizeDraft(rawURL), strings.TrimSpace(rawTitle)

	if e.value != nil {
		if e.value.URL == rawURL && e.value.Title == rawTitle {
			return e.stopEditing()
		}
		// Committed values may come from outside unnormalized
		if normalizeDraft(e.value.URL) == url && strings.TrimSpace(e.value.Title) == title {
			return e.stopEditing()
		}
	}

	next := model.LinkValue{}
	if e.value != nil {
		next = e.value.Clone()
	}
	next.URL = url
	next.Title = title

	return tea.Batch(e.commit(next), e.stopEditing())
}

// normalizeDraft trims text and normalizes it when it looks like a URL.
func normalizeDraft(text string) string {
	text = strings.TrimSpace(text)
	if suggest.IsURLLike(text) {
		return suggest.NormalizeURL(text)
	}
	return text
}

// commit stores next as the committed value and notifies the host.
func (e *Editor) commit(next model.LinkValue) tea.Cmd {
	e.value = &next
	e.resetDrafts()
	if e.params.OnChange == nil {
		return nil
	}
	return e.params.OnChange(next.Clone())
}

func (e *Editor) cancel() tea.Cmd {
	e.resetDrafts()

	var cmd tea.Cmd
	if e.value != nil && e.value.HasURL() {
		cmd = e.stopEditing()
	} else {
		e.refreshSuggestions()
	}

	if e.params.OnCancel != nil {
		return tea.Batch(cmd, e.params.OnCancel())
	}
	return cmd
}

func (e *Editor) startEditing() tea.Cmd {
	e.isEditingLink = true
	e.resetDrafts()
	e.refreshSuggestions()
	return e.afterTransition()
}

func (e *Editor) stopEditing() tea.Cmd {
	e.endingEditWithFocus = e.hasFocus()
	e.isEditingLink = false
	e.suggestions = nil
	e.suggestionIdx = -1
	return e.afterTransition()
}

// handleCreateResult folds a finished page creation back in. On success the
// new page is committed like any picked suggestion.
func (e *Editor) handleCreateResult(msg suggest.CreateResultMsg) tea.Cmd {
	var ok bool
	e.creator, ok = e.creator.Finish(msg)
	if !ok {
		return nil
	}

	if msg.Err != nil {
		return e.afterTransition()
	}
	return e.commitSuggestion(msg.Page.LinkValue())
}

// toggleSetting flips the boolean setting at index i of the configured list.
func (e *Editor) toggleSetting(i int) tea.Cmd {
	if e.value == nil || i < 0 || i >= len(e.params.Settings) {
		return nil
	}

	id := e.params.Settings[i].ID
	return e.commit(e.value.WithSetting(id, !e.value.SettingEnabled(id)))
}

func (e *Editor) copyURL() tea.Cmd {
	if e.value == nil || !e.value.HasURL() || e.copyButton.Disabled() {
		return nil
	}

	url := e.value.URL
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(url)}
	}
}
