// Package suggest supplies link suggestions and creates catalogue pages on
// demand for the link editor.
package suggest

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/nikbrunner/lnk/internal/model"
)

// Kind distinguishes the entries of a suggestion list.
type Kind int

const (
	KindEntity Kind = iota // catalogue page
	KindURL                // the typed URL itself
	KindCreate             // create a new page titled after the query
)

// ErrEmptyTitle is returned when asked to create a page without a title.
var ErrEmptyTitle = errors.New("page title is empty")

// Suggestion is a single entry offered by a Provider.
type Suggestion struct {
	Kind  Kind
	ID    string
	Title string
	URL   string
	Type  string
}

// LinkValue converts the suggestion into a link value.
func (s Suggestion) LinkValue() model.LinkValue {
	return model.LinkValue{URL: s.URL, Title: s.Title}
}

// Query narrows a search. Providers interpret it; the editor passes it through.
type Query struct {
	Type    string // page type filter, empty for all
	Subtype string
	Limit   int // zero means provider default
}

// Provider searches for link suggestions and creates pages.
type Provider interface {
	Search(query string, q Query) []Suggestion
	CreatePage(ctx context.Context, title string) (model.Page, error)
}

var (
	schemeRe     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	domainLikeRe = regexp.MustCompile(`^(www\.|[a-z0-9-]+\.[a-z]{2,})`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsURLLike reports whether the text should be treated as a URL rather than
// a search term or a page title.
func IsURLLike(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t") {
		return false
	}
	switch {
	case schemeRe.MatchString(text):
		return true
	case strings.HasPrefix(text, "/"), strings.HasPrefix(text, "#"), strings.HasPrefix(text, "?"):
		return true
	default:
		return domainLikeRe.MatchString(strings.ToLower(text))
	}
}

// NormalizeURL prefixes bare domains with https:// and leaves everything
// else untouched.
func NormalizeURL(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || schemeRe.MatchString(text) {
		return text
	}
	if strings.HasPrefix(text, "/") || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "?") {
		return text
	}
	if domainLikeRe.MatchString(strings.ToLower(text)) {
		return "https://" + text
	}
	return text
}

// Slugify turns a title into a URL path segment.
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// PageURL joins the site URL and the slug of the title.
func PageURL(siteURL, title string) (string, error) {
	base, err := url.Parse(strings.TrimRight(siteURL, "/"))
	if err != nil {
		return "", err
	}
	return base.JoinPath(Slugify(title)).String() + "/", nil
}
