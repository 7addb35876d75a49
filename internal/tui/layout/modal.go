package layout

// ModalKind selects which configured width a modal uses.
type ModalKind int

const (
	ModalDialog ModalKind = iota
	ModalEditor
)

// ModalWidth returns the width of a modal of the given kind: its share of
// the terminal, clamped to [MinWidth, MaxWidth] and kept 4 columns inside
// the terminal. Never less than 1.
func ModalWidth(terminalWidth int, kind ModalKind, cfg ModalConfig) int {
	percent := cfg.DefaultWidthPercent
	if kind == ModalEditor {
		percent = cfg.EditorWidthPercent
	}

	width := min(max(terminalWidth*percent/100, cfg.MinWidth), cfg.MaxWidth)
	return max(min(width, terminalWidth-4), 1)
}
