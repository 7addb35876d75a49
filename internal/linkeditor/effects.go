package linkeditor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/focus"
	"github.com/nikbrunner/lnk/internal/preview"
)

const previewTimeout = 10 * time.Second

// focusKey is the part of the state whose changes move focus.
type focusKey struct {
	editing  bool
	creating bool
}

type richPreviewMsg struct {
	url  string
	meta preview.Metadata
}

func (e *Editor) focusKey() focusKey {
	return focusKey{editing: e.isEditingLink, creating: e.creator.IsCreating()}
}

// Focusables implements focus.Container. The order is the tab order of the
// rendered widgets.
func (e *Editor) Focusables() []focus.Focusable {
	flags := e.Flags()

	var out []focus.Focusable
	if flags.ShouldShowEditControls {
		if flags.ShowTextControl {
			out = append(out, &e.textInput)
		}
		out = append(out, &e.urlInput)
	}
	if flags.ShouldShowLinkPreview {
		out = append(out, &e.editButton, &e.copyButton)
		if flags.ShownUnlinkControl {
			out = append(out, &e.unlinkButton)
		}
	}
	return out
}

// Focus moves focus to the primary widget of the current mode. It is meant
// for the host to call when it hands control to the editor.
func (e *Editor) Focus() tea.Cmd {
	return e.moveFocus(e.focus.FindFocusableDescendants(e))
}

// Blur removes focus from every widget of the editor.
func (e *Editor) Blur() {
	e.blurAll()
}

// afterTransition runs the effects that follow a state change. The focus
// effect only fires when editing or creating changed since its last run,
// which is never the case right after New.
func (e *Editor) afterTransition() tea.Cmd {
	var cmds []tea.Cmd

	if k := e.focusKey(); k != e.lastFocusKey {
		e.lastFocusKey = k
		cmds = append(cmds, e.moveFocus(e.focus.FindFocusableDescendants(e)))
		e.endingEditWithFocus = false
	}

	if e.wantsPreview() && e.value.URL != e.previewURL {
		e.previewURL = e.value.URL
		e.previewMeta = nil
		e.previewLoading = true
		cmds = append(cmds, e.fetchPreview(e.value.URL))
	}

	return tea.Batch(cmds...)
}

// moveFocus focuses the second descendant when a title input is rendered,
// the first otherwise, and the root region if there is no such descendant.
func (e *Editor) moveFocus(descendants []focus.Focusable) tea.Cmd {
	idx := 0
	if flags := e.Flags(); flags.ShouldShowEditControls && flags.ShowTextControl {
		idx = 1
	}

	var target focus.Focusable = &e.root
	if idx < len(descendants) {
		target = descendants[idx]
	}

	e.blurAll()
	return target.Focus()
}

func (e *Editor) hasFocus() bool {
	return e.urlInput.Focused() || e.textInput.Focused() ||
		e.editButton.Focused() || e.copyButton.Focused() || e.unlinkButton.Focused() ||
		e.root.Focused()
}

func (e *Editor) blurAll() {
	e.urlInput.Blur()
	e.textInput.Blur()
	e.editButton.Blur()
	e.copyButton.Blur()
	e.unlinkButton.Blur()
	e.root.Blur()
}

func (e *Editor) wantsPreview() bool {
	return e.params.HasRichPreviews &&
		e.params.Previews != nil &&
		e.Flags().ShouldShowLinkPreview &&
		e.value.HasURL()
}

func (e *Editor) fetchPreview(url string) tea.Cmd {
	fetcher := e.params.Previews
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
		defer cancel()

		// Unhealthy URLs still carry a status worth showing
		meta, _ := fetcher.Fetch(ctx, url)
		return richPreviewMsg{url: url, meta: meta}
	}
}
