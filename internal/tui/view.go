package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/lnk/internal/tui/layout"
)

// renderView creates the complete view for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeEditor, ModeConfirmDelete:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			a.renderList(),
			a.styles.Footer.Render(a.Summary()),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderHeader() string {
	title := "lnk"
	if pages := a.PageCount(); pages > 1 {
		title = fmt.Sprintf("lnk  page %d/%d", a.CurrentPage(), pages)
	}
	return a.styles.Title.Render(title)
}

// renderList renders the rows of the current page. Pages taller than the
// terminal scroll around the cursor.
func (a App) renderList() string {
	if len(a.items) == 0 {
		return a.styles.Empty.Render("No links yet. Press a to add one.")
	}

	perPage := a.config.PerPage
	pageStart := (a.CurrentPage() - 1) * perPage
	pageEnd := pageStart + perPage
	if pageEnd > len(a.items) {
		pageEnd = len(a.items)
	}
	rows := a.items[pageStart:pageEnd]

	visible := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	offset := layout.CalculateViewportOffset(a.cursor-pageStart, len(rows), visible)
	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	cols := layout.CalculateColumnWidths(a.width, a.layoutConfig.List)
	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderItem(rows[i], pageStart+i == a.cursor, cols))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderItem(item Item, isCursor bool, cols layout.ColumnWidths) string {
	marker := ""
	if item.OpensInNewTab() {
		marker = " ↗"
	}
	title, _ := layout.TruncateWithSuffix(item.Title(), marker, cols.Title, a.layoutConfig.Text)
	url, _ := layout.TruncateText(item.URL(), cols.URL, a.layoutConfig.Text)

	title = lipgloss.NewStyle().Width(cols.Title).Render(title)
	if isCursor {
		return a.styles.ItemSelected.Render(title + " " + url)
	}
	return a.styles.Item.Render(title + " " + a.styles.URL.Render(url))
}

// renderModal renders the editor or the delete confirmation centered on
// screen.
func (a App) renderModal() string {
	kind := layout.ModalDialog
	if a.mode == ModeEditor {
		kind = layout.ModalEditor
	}
	style := a.styles.Modal.Width(layout.ModalWidth(a.width, kind, a.layoutConfig.Modal))

	var title, content string
	var hints []Hint

	switch a.mode {
	case ModeEditor:
		title = "Edit Link"
		if a.editor.IsNew {
			title = "Add Link"
		}
		content = a.editor.Editor.View()
		hints = a.getContextualHints().All()

	case ModeConfirmDelete:
		title = "Delete Link"
		content = fmt.Sprintf("Delete %q?\n%s",
			a.confirm.Title, a.styles.URL.Render(a.confirm.URL))
		hints = a.getContextualHints().All()
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.ModalTitle.Render(title),
		content,
		"",
		a.renderHintsInline(hints),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, style.Render(body))
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Message replaces the gap line
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with a prefix based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Message.Render("✓ " + a.messageText)
	default:
		return a.styles.Message.Render(a.messageText)
	}
}

func (a App) renderHelpOverlay() string {
	keyCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpKeyColumnWidth)

	section := func(name string, rows [][2]string) string {
		var b strings.Builder
		b.WriteString(a.styles.Title.Render(name))
		for _, r := range rows {
			b.WriteString("\n")
			b.WriteString(keyCol.Render(r[0]) + r[1])
		}
		return b.String()
	}

	list := section("list", [][2]string{
		{"j/k", "move"},
		{"gg/G", "top/bottom"},
		{"n/p", "next/prev page"},
		{"a", "add link"},
		{"e/Enter", "open link"},
		{"d", "delete"},
		{"Y", "yank url"},
	})
	editor := section("editor", [][2]string{
		{"Enter", "apply / pick"},
		{"↑/↓", "suggestions"},
		{"Tab", "next field"},
		{"e", "edit"},
		{"y", "copy url"},
		{"u", "unlink"},
		{"1-9", "toggle setting"},
		{"Esc", "cancel / close"},
	})

	cols := lipgloss.JoinHorizontal(lipgloss.Top, list, "    ", editor)
	footer := a.styles.HintDesc.Render("[?/esc] close")

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(cols+"\n\n"+footer),
	)
}
