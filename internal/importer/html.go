// Package importer reads Netscape bookmark files into catalogue pages.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/lnk/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLPages parses Netscape bookmark HTML and returns one page per
// anchor. Folder structure is flattened; anchors without HREF are skipped.
func ParseHTMLPages(r io.Reader) ([]model.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var pages []model.Page

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				return

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				page := model.NewPage(model.NewPageParams{
					Title: title,
					URL:   href,
					Type:  model.PageTypeURL,
				})
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						page.CreatedAt = time.Unix(ts, 0)
					}
				}
				pages = append(pages, page)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return pages, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
