package layout

// ColumnWidths holds the widths of the link list columns.
type ColumnWidths struct {
	Title int
	URL   int
}

// CalculateListHeight computes how many link rows fit on screen.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateColumnWidths splits the usable row width between title and URL.
func CalculateColumnWidths(terminalWidth int, cfg ListConfig) ColumnWidths {
	usable := terminalWidth - cfg.ContentPadding
	if usable < 2 {
		return ColumnWidths{Title: 1, URL: 1}
	}

	url := usable * cfg.URLWidthPercent / 100
	if url < 1 {
		url = 1
	}
	return ColumnWidths{Title: usable - url, URL: url}
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
