package linkeditor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lnk/internal/focus"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/suggest"
)

// Context returns the state bundle passed to renderers and slots.
func (e Editor) Context() Context {
	return Context{
		Value:         e.value,
		Mode:          e.Mode(),
		Flags:         e.Flags(),
		DraftURL:      e.urlInput.Value(),
		DraftTitle:    e.textInput.Value(),
		Suggestions:   e.suggestions,
		SuggestionIdx: e.suggestionIdx,
		CreateError:   e.creator.ErrorMessage(),
		Settings:      e.params.Settings,
		Preview:       e.previewMeta,
		Styles:        e.styles,
		Width:         e.width,
	}
}

// View renders the editor.
func (e Editor) View() string {
	ctx := e.Context()
	var sections []string

	switch {
	case ctx.Mode == ModeCreatingSuggestion:
		sections = append(sections, e.styles.Muted.Render("Creating page…"))
	case ctx.Flags.ShouldShowEditControls:
		sections = append(sections, e.renderForm(ctx))
		sections = append(sections, e.renderSlots(ctx, SlotFormAfter)...)
	case ctx.Flags.ShouldShowLinkPreview:
		sections = append(sections, e.renderPreview(ctx))
		sections = append(sections, e.renderSlots(ctx, SlotPreviewAfter)...)
	}

	if ctx.CreateError != "" {
		sections = append(sections, e.styles.Error.Render(ctx.CreateError))
	}

	if ctx.Flags.ShowSettingsDrawer && ctx.Value != nil && ctx.Mode != ModeCreatingSuggestion {
		sections = append(sections, renderSettings(ctx))
		sections = append(sections, e.renderSlots(ctx, SlotDrawerAfter)...)
	}

	if e.notice != "" {
		sections = append(sections, e.styles.Notice.Render(e.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (e Editor) renderForm(ctx Context) string {
	var b strings.Builder

	if ctx.Flags.ShowTextControl {
		b.WriteString(e.styles.Label.Render("Text"))
		b.WriteString("\n")
		b.WriteString(e.textInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(e.styles.Label.Render("URL"))
	b.WriteString("\n")
	b.WriteString(e.urlInput.View())

	if len(ctx.Suggestions) > 0 {
		b.WriteString("\n")
		for i, s := range ctx.Suggestions {
			b.WriteString("\n")
			line := e.suggestionLine(s)
			if i == ctx.SuggestionIdx {
				b.WriteString(e.styles.SuggestionSel.Render(line))
			} else {
				b.WriteString(e.styles.Suggestion.Render(line))
			}
		}
	}

	return b.String()
}

func (e Editor) suggestionLine(s suggest.Suggestion) string {
	switch s.Kind {
	case suggest.KindCreate:
		return e.createText() + s.Title
	case suggest.KindURL:
		return s.URL
	default:
		if s.URL == "" {
			return s.Title
		}
		return fmt.Sprintf("%s  %s", s.Title, s.URL)
	}
}

func (e Editor) renderPreview(ctx Context) string {
	v := ctx.Value
	var b strings.Builder

	title := v.Title
	if title == "" {
		title = v.URL
	}
	if v.OpensInNewTab() {
		title += " ↗"
	}
	b.WriteString(e.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(e.styles.URL.Render(v.URL))

	if details := e.renderRichDetails(ctx.Preview); details != "" {
		b.WriteString("\n")
		b.WriteString(details)
	}

	b.WriteString("\n\n")
	buttons := []string{e.renderButton(&e.editButton), e.renderButton(&e.copyButton)}
	if ctx.Flags.ShownUnlinkControl {
		buttons = append(buttons, e.renderButton(&e.unlinkButton))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))

	return b.String()
}

func (e Editor) renderRichDetails(meta *preview.Metadata) string {
	if !e.params.HasRichPreviews {
		return ""
	}
	if meta == nil {
		if e.previewLoading {
			return e.styles.PreviewDetails.Render("Fetching preview…")
		}
		return ""
	}
	if meta.Status != preview.Healthy {
		return e.styles.Error.Render(fmt.Sprintf("%s: %s", meta.Status, meta.Error))
	}

	var lines []string
	if meta.Title != "" && (e.value == nil || meta.Title != e.value.Title) {
		lines = append(lines, meta.Title)
	}
	if meta.Description != "" {
		lines = append(lines, meta.Description)
	}
	if meta.Image != "" {
		lines = append(lines, "Image: "+meta.Image)
	}
	if len(lines) == 0 {
		return ""
	}
	return e.styles.PreviewDetails.Width(e.width).Render(strings.Join(lines, "\n"))
}

func (e Editor) renderButton(b *focus.Button) string {
	if b.Disabled() {
		return e.styles.Muted.Render(b.Label)
	}
	if b.Focused() {
		return e.styles.ButtonFocused.Render(b.Label)
	}
	return e.styles.Button.Render(b.Label)
}

func renderSettings(ctx Context) string {
	var b strings.Builder
	b.WriteString(ctx.Styles.DrawerHeader.Render("Settings"))
	for i, s := range ctx.Settings {
		mark := "[ ]"
		if ctx.Value.SettingEnabled(s.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "\n%d %s %s", i+1, mark, s.Title)
	}
	return b.String()
}

func (e Editor) renderSlots(ctx Context, name SlotName) []string {
	var out []string
	for _, s := range e.params.Slots {
		if s.Name != name || s.Render == nil {
			continue
		}
		if rendered := s.Render(ctx); rendered != "" {
			out = append(out, rendered)
		}
	}
	return out
}
