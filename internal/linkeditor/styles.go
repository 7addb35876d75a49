package linkeditor

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the editor.
type Styles struct {
	Label          lipgloss.Style
	Title          lipgloss.Style
	URL            lipgloss.Style
	Muted          lipgloss.Style
	Suggestion     lipgloss.Style
	SuggestionSel  lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	Error          lipgloss.Style
	Notice         lipgloss.Style
	DrawerHeader   lipgloss.Style
	PreviewDetails lipgloss.Style
}

// DefaultStyles returns the default style configuration, matching the
// grayscale palette with a single teal accent used across lnk.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	danger := lipgloss.AdaptiveColor{Light: "#8A3B3B", Dark: "#B06060"}

	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(subtle),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		URL: lipgloss.NewStyle().
			Foreground(accent),

		Muted: lipgloss.NewStyle().
			Foreground(subtle),

		Suggestion: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(2),

		SuggestionSel: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")).
			PaddingLeft(2),

		Button: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		ButtonFocused: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		Notice: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		DrawerHeader: lipgloss.NewStyle().
			Foreground(subtle).
			MarginTop(1),

		PreviewDetails: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(2),
	}
}
