package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type PageStore interface {
	Find(ctx context.Context, key string) (model.Page, error)
	Update(ctx context.Context, p model.Page) error
}

const (
	pageTag = "page:"
	pageTTL = 10 * time.Minute
)

var validPageKeys = map[string]struct{}{
	"about":   {},
	"contact": {},
}

// PageService manages the fixed singleton pages (about, contact). Pages are
// seeded with the schema and only ever updated through the API.
type PageService struct {
	store PageStore
	cache *cache.Cache
	audit *AuditService
}

func NewPageService(store PageStore, c *cache.Cache, audit *AuditService) *PageService {
	return &PageService{store: store, cache: c, audit: audit}
}

func (s *PageService) Get(ctx context.Context, key string) (model.Page, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := validPageKeys[key]; !ok {
		return model.Page{}, model.ErrPageNotFound
	}

	return cache.Wrap(ctx, s.cache, pageTag+key, pageTTL,
		func(ctx context.Context) (model.Page, error) {
			return s.store.Find(ctx, key)
		})
}

func (s *PageService) Update(ctx context.Context, key string, input model.PageInput, actor string) (model.Page, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := validPageKeys[key]; !ok {
		return model.Page{}, model.ErrPageNotFound
	}
	if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Body) == "" {
		return model.Page{}, apierror.New("BAD_REQUEST", "title or body is required", "", http.StatusBadRequest)
	}

	existing, err := s.store.Find(ctx, key)
	if err != nil {
		return model.Page{}, err
	}

	if strings.TrimSpace(input.Title) != "" {
		existing.Title = strings.TrimSpace(input.Title)
	}
	if strings.TrimSpace(input.Body) != "" {
		existing.Body = input.Body
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, existing); err != nil {
		return model.Page{}, err
	}

	s.cache.InvalidatePattern(pageTag)
	s.cache.Delete(pageTag + key)
	s.audit.Record(ctx, actor, "update", "page", key)
	return existing, nil
}
