// Package preview fetches the metadata shown in rich link previews.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read while looking for metadata.
const maxBodyBytes = 512 << 10

// ErrUnhealthy wraps non-healthy responses; Metadata still carries the details.
var ErrUnhealthy = errors.New("url is not healthy")

// Metadata is what a rich preview displays for a URL.
type Metadata struct {
	URL         string
	Title       string
	Description string
	Image       string
	Status      Status
	StatusCode  int    // HTTP status code (0 if connection failed)
	Error       string // normalized error for unhealthy URLs
}

// Fetcher retrieves preview metadata for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Metadata, error)
}

// HTTPFetcher fetches previews over HTTP.
type HTTPFetcher struct {
	client     *http.Client
	excludeMap map[string]bool
	log        logrus.FieldLogger
}

// HTTPFetcherParams holds parameters for creating an HTTPFetcher.
type HTTPFetcherParams struct {
	Timeout        time.Duration // defaults to 10s
	ExcludeDomains []string      // domains where 404 means private, not dead
	Client         *http.Client  // optional, overrides Timeout
	Logger         logrus.FieldLogger
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(params HTTPFetcherParams) *HTTPFetcher {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	excludeMap := make(map[string]bool, len(params.ExcludeDomains))
	for _, domain := range params.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	logger := params.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &HTTPFetcher{
		client:     client,
		excludeMap: excludeMap,
		log:        logger.WithField("component", "preview"),
	}
}

// Fetch GETs the URL and extracts title, description and image.
// Unhealthy responses return Metadata with Status set and an error wrapping
// ErrUnhealthy.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (Metadata, error) {
	meta := Metadata{URL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		meta.Status = Unreachable
		meta.Error = normalizeError(err.Error())
		return meta, fmt.Errorf("%w: %s", ErrUnhealthy, meta.Error)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		meta.Status = Unreachable
		meta.Error = normalizeError(err.Error())
		f.log.WithError(err).WithField("url", rawURL).Debug("preview fetch failed")
		return meta, fmt.Errorf("%w: %s", ErrUnhealthy, meta.Error)
	}
	defer resp.Body.Close()

	meta.StatusCode = resp.StatusCode
	meta.Status, meta.Error = classify(rawURL, resp.StatusCode, f.excludeMap)
	if meta.Status != Healthy {
		return meta, fmt.Errorf("%w: %s", ErrUnhealthy, meta.Error)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return meta, nil
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return meta, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	extract(doc, &meta)

	f.log.WithFields(logrus.Fields{
		"url":    rawURL,
		"status": resp.StatusCode,
		"title":  meta.Title,
	}).Debug("preview fetched")

	return meta, nil
}

// extract walks the document filling title, description and image.
// Open Graph values win over <title> and meta description.
func extract(doc *html.Node, meta *Metadata) {
	var title, ogTitle, desc, ogDesc string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "title":
				if title == "" {
					title = getTextContent(n)
				}
				return
			case "meta":
				name := strings.ToLower(getAttr(n, "name"))
				prop := strings.ToLower(getAttr(n, "property"))
				content := strings.TrimSpace(getAttr(n, "content"))
				switch {
				case prop == "og:title":
					ogTitle = content
				case prop == "og:description":
					ogDesc = content
				case prop == "og:image":
					meta.Image = content
				case name == "description":
					desc = content
				}
			case "body":
				// Metadata lives in <head>
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	meta.Title = firstNonEmpty(ogTitle, title)
	meta.Description = firstNonEmpty(ogDesc, desc)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
