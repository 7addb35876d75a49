package suggest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/search"
	"github.com/sirupsen/logrus"
)

const defaultLimit = 8

// Saver persists the store after a page has been created.
type Saver interface {
	Save(store *model.Store) error
}

// LocalProvider serves suggestions from the in-memory page catalogue.
// CreatePage runs inside a bubbletea command goroutine, so every access to
// the store goes through mu.
type LocalProvider struct {
	mu      sync.RWMutex
	store   *model.Store
	siteURL string
	saver   Saver
	log     logrus.FieldLogger
}

// LocalProviderParams holds parameters for creating a LocalProvider.
type LocalProviderParams struct {
	Store   *model.Store
	SiteURL string
	Saver   Saver              // optional
	Logger  logrus.FieldLogger // optional
}

// NewLocalProvider creates a LocalProvider over the given store.
func NewLocalProvider(params LocalProviderParams) *LocalProvider {
	logger := params.Logger
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = l
	}

	return &LocalProvider{
		store:   params.Store,
		siteURL: params.SiteURL,
		saver:   params.Saver,
		log:     logger.WithField("component", "suggest"),
	}
}

// Search returns catalogue pages matching the query, best first. An empty
// query returns the most recently added pages.
func (p *LocalProvider) Search(query string, q Query) []Suggestion {
	p.mu.RLock()
	defer p.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var pages []*model.Page
	query = strings.TrimSpace(query)
	if query == "" {
		pages = search.RecentPages(p.store.Pages, 0)
	} else {
		for _, r := range search.FuzzySearchPages(p.store.Pages, query) {
			pages = append(pages, r.Page)
		}
	}

	out := make([]Suggestion, 0, limit)
	for _, page := range pages {
		if q.Type != "" && page.Type != q.Type {
			continue
		}
		out = append(out, Suggestion{
			Kind:  KindEntity,
			ID:    page.ID,
			Title: page.Title,
			URL:   page.URL,
			Type:  page.Type,
		})
		if len(out) == limit {
			break
		}
	}

	p.log.WithFields(logrus.Fields{
		"query":   query,
		"type":    q.Type,
		"results": len(out),
	}).Debug("search")

	return out
}

// CreatePage adds a page titled title to the catalogue and persists the
// store when a Saver is configured.
func (p *LocalProvider) CreatePage(ctx context.Context, title string) (model.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Page{}, ErrEmptyTitle
	}
	if err := ctx.Err(); err != nil {
		return model.Page{}, err
	}

	pageURL, err := PageURL(p.siteURL, title)
	if err != nil {
		return model.Page{}, fmt.Errorf("build page url: %w", err)
	}

	page := model.NewPage(model.NewPageParams{
		Title: title,
		URL:   pageURL,
		Type:  model.PageTypePage,
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store.HasPageURL(page.URL) {
		return model.Page{}, fmt.Errorf("a page already exists at %s", page.URL)
	}
	p.store.AddPage(page)

	if p.saver != nil {
		if err := p.saver.Save(p.store); err != nil {
			// Roll back so the catalogue matches what is on disk
			p.store.Pages = p.store.Pages[:len(p.store.Pages)-1]
			p.log.WithError(err).WithField("title", title).Error("persist created page")
			return model.Page{}, fmt.Errorf("save page: %w", err)
		}
	}

	p.log.WithFields(logrus.Fields{
		"id":  page.ID,
		"url": page.URL,
	}).Info("page created")

	return page, nil
}
