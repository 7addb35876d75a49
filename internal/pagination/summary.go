// Package pagination formats the summary line of a paged content query.
package pagination

import (
	"errors"
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DisplayType selects the summary template.
type DisplayType string

const (
	RangeDisplay DisplayType = "range-display"
	TotalResults DisplayType = "total-results"
)

// ParseDisplayType maps a configured value to a DisplayType.
// Unknown values fall back to TotalResults.
func ParseDisplayType(s string) DisplayType {
	if DisplayType(s) == RangeDisplay {
		return RangeDisplay
	}
	return TotalResults
}

// Params describes the page being shown.
type Params struct {
	CurrentPage int
	PerPage     int
	FoundPosts  int
	DisplayType DisplayType
}

const (
	keyTotal     = "%d results found"
	keyRange     = "Displaying %d – %d of %d"
	keyRangeOne  = "Displaying %d of %d"
	summaryMatch = "=1"
)

var printer = newPrinter()

func newPrinter() *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	// Only the total needs plural selection; the range templates are fixed.
	err := errors.Join(
		b.Set(language.English, keyTotal, plural.Selectf(1, "%d",
			summaryMatch, "%d result found",
			plural.Other, "%d results found",
		)),
		b.SetString(language.English, keyRange, keyRange),
		b.SetString(language.English, keyRangeOne, keyRangeOne),
	)
	if err != nil {
		panic(fmt.Sprintf("pagination: build catalog: %v", err))
	}
	return message.NewPrinter(language.English, message.Catalog(b))
}

// normalize clamps malformed input: pages start at 1, at least one post per
// page, never a negative total.
func normalize(p Params) Params {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.FoundPosts < 0 {
		p.FoundPosts = 0
	}
	return p
}

// Bounds returns the 1-based positions of the first and last post on the
// current page. Both are 0 when nothing was found; a page past the end
// collapses onto the last post.
func Bounds(p Params) (start, end int) {
	p = normalize(p)
	if p.FoundPosts == 0 {
		return 0, 0
	}

	start = (p.CurrentPage-1)*p.PerPage + 1
	if start > p.FoundPosts {
		start = p.FoundPosts
	}
	end = min(start+p.PerPage-1, p.FoundPosts)
	return start, end
}

// Pages returns the number of pages needed for found posts.
func Pages(found, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	if found <= 0 {
		return 1
	}
	return (found + perPage - 1) / perPage
}

// Format renders the summary line for p.
//
//	range-display:  "Displaying 1 – 10 of 25", "Displaying 1 of 1"
//	total-results:  "25 results found", "1 result found"
func Format(p Params) string {
	p = normalize(p)

	if p.DisplayType != RangeDisplay {
		return printer.Sprintf(keyTotal, p.FoundPosts)
	}

	start, end := Bounds(p)
	if start == end {
		return printer.Sprintf(keyRangeOne, start, p.FoundPosts)
	}
	return printer.Sprintf(keyRange, start, end, p.FoundPosts)
}
