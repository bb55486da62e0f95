package mapa

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"postos/pkg/metrics"
)

// PageFactory builds the page for a new session id.
type PageFactory func(id uuid.UUID) *Page

// Registry keeps the open pages. When full, the least recently used page is closed.
type Registry struct {
	pages   *lru.Cache[uuid.UUID, *Page]
	factory PageFactory
}

func NewRegistry(size int, factory PageFactory) (*Registry, error) {
	pages, err := lru.NewWithEvict(size, func(_ uuid.UUID, page *Page) {
		page.Close()
		metrics.ActivePages.Dec()
	})
	if err != nil {
		return nil, err
	}
	return &Registry{pages: pages, factory: factory}, nil
}

func (r *Registry) Create() *Page {
	page := r.factory(uuid.New())
	metrics.ActivePages.Inc()
	r.pages.Add(page.ID, page)
	return page
}

func (r *Registry) Get(id uuid.UUID) (*Page, bool) {
	return r.pages.Get(id)
}

func (r *Registry) Remove(id uuid.UUID) bool {
	return r.pages.Remove(id)
}

func (r *Registry) Len() int {
	return r.pages.Len()
}

// Close closes every page.
func (r *Registry) Close() {
	r.pages.Purge()
}
