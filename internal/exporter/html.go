// Package exporter writes the store as a Netscape bookmark file.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/lnk/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/lnk-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("lnk-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format. Links are
// written at the root, catalogue pages inside a "Pages" folder.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Links</TITLE>\n")
	b.WriteString("<H1>Links</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, link := range store.Links {
		if !link.Value.HasURL() {
			continue
		}
		writeLink(&b, link, 1)
	}

	if len(store.Pages) > 0 {
		prefix := strings.Repeat("    ", 1)
		fmt.Fprintf(&b, "%s<DT><H3>Pages</H3>\n", prefix)
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, page := range store.Pages {
			writeAnchor(&b, 2, page.URL, page.Title, page.CreatedAt, false)
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeLink(b *strings.Builder, link model.Link, indent int) {
	title := link.Value.Title
	if title == "" {
		title = link.Value.URL
	}
	writeAnchor(b, indent, link.Value.URL, title, link.CreatedAt, link.Value.OpensInNewTab())
}

func writeAnchor(b *strings.Builder, indent int, url, title string, created time.Time, newTab bool) {
	prefix := strings.Repeat("    ", indent)

	target := ""
	if newTab {
		target = ` TARGET="_blank"`
	}

	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
		prefix,
		html.EscapeString(url),
		created.Unix(),
		target,
		html.EscapeString(title),
	)
}
