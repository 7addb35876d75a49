package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Text  TextConfig
}

// ListConfig holds link list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list rows.
	// Accounts for: app padding (1) + title (2) + footer (2) + help bar (2) = 7
	HeightReduction int

	// MinHeight is the minimum number of visible rows.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	ContentPadding int

	// URLWidthPercent is the share of the row given to the URL column.
	URLWidthPercent int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// EditorWidthPercent is used for the link editor, which needs more space.
	EditorWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 7,
			MinHeight:       3,
			ContentPadding:  6,
			URLWidthPercent: 45,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			EditorWidthPercent:  60,
			MinWidth:            50,
			MaxWidth:            90,
			HelpKeyColumnWidth:  12,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
