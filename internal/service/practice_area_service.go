package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type PracticeAreaStore interface {
	List(ctx context.Context) ([]model.PracticeArea, error)
	FindByID(ctx context.Context, id string) (model.PracticeArea, error)
	FindBySlug(ctx context.Context, slug string) (model.PracticeArea, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, p model.PracticeArea) error
	Update(ctx context.Context, p model.PracticeArea) error
	Delete(ctx context.Context, id string) error
}

const (
	serviceTag     = "service:"
	serviceListTTL = 10 * time.Minute
	serviceItemTTL = 10 * time.Minute
)

type PracticeAreaService struct {
	store PracticeAreaStore
	cache *cache.Cache
	audit *AuditService
}

func NewPracticeAreaService(store PracticeAreaStore, c *cache.Cache, audit *AuditService) *PracticeAreaService {
	return &PracticeAreaService{store: store, cache: c, audit: audit}
}

func (s *PracticeAreaService) List(ctx context.Context) ([]model.PracticeArea, error) {
	return cache.Wrap(ctx, s.cache, serviceTag+"list", serviceListTTL,
		func(ctx context.Context) ([]model.PracticeArea, error) {
			return s.store.List(ctx)
		})
}

func (s *PracticeAreaService) GetBySlug(ctx context.Context, slug string) (model.PracticeArea, error) {
	return cache.Wrap(ctx, s.cache, serviceTag+"slug:"+slug, serviceItemTTL,
		func(ctx context.Context) (model.PracticeArea, error) {
			return s.store.FindBySlug(ctx, slug)
		})
}

func (s *PracticeAreaService) GetByID(ctx context.Context, id string) (model.PracticeArea, error) {
	return cache.Wrap(ctx, s.cache, serviceTag+"id:"+id, serviceItemTTL,
		func(ctx context.Context) (model.PracticeArea, error) {
			return s.store.FindByID(ctx, id)
		})
}

func (s *PracticeAreaService) Create(ctx context.Context, input model.PracticeAreaInput, actor string) (model.PracticeArea, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.PracticeArea{}, apierror.New("BAD_REQUEST", "title is required", "title", http.StatusBadRequest)
	}

	slug, err := resolveSlug(ctx, strings.TrimSpace(input.Slug), input.Title, "", s.store.SlugExists)
	if err != nil {
		return model.PracticeArea{}, err
	}

	now := time.Now().UTC()
	area := model.PracticeArea{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(input.Title),
		Slug:         slug,
		Summary:      strings.TrimSpace(input.Summary),
		Description:  input.Description,
		IconURL:      strings.TrimSpace(input.IconURL),
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, area); err != nil {
		return model.PracticeArea{}, err
	}

	s.invalidate(area)
	s.audit.Record(ctx, actor, "create", "service", area.ID)
	return area, nil
}

func (s *PracticeAreaService) Update(ctx context.Context, id string, input model.PracticeAreaInput, actor string) (model.PracticeArea, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.PracticeArea{}, err
	}

	oldSlug := existing.Slug

	if strings.TrimSpace(input.Title) != "" {
		existing.Title = strings.TrimSpace(input.Title)
	}
	if supplied := strings.TrimSpace(input.Slug); supplied != "" && supplied != existing.Slug {
		slug, err := resolveSlug(ctx, supplied, existing.Title, id, s.store.SlugExists)
		if err != nil {
			return model.PracticeArea{}, err
		}
		existing.Slug = slug
	}
	if input.Summary != "" {
		existing.Summary = strings.TrimSpace(input.Summary)
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.IconURL != "" {
		existing.IconURL = strings.TrimSpace(input.IconURL)
	}
	if input.DisplayOrder != 0 {
		existing.DisplayOrder = input.DisplayOrder
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, existing); err != nil {
		return model.PracticeArea{}, err
	}

	s.invalidate(existing)
	s.cache.Delete(serviceTag + "slug:" + oldSlug)
	s.audit.Record(ctx, actor, "update", "service", id)
	return existing, nil
}

func (s *PracticeAreaService) Delete(ctx context.Context, id string, actor string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(existing)
	s.audit.Record(ctx, actor, "delete", "service", id)
	return nil
}

func (s *PracticeAreaService) invalidate(p model.PracticeArea) {
	s.cache.InvalidatePattern(serviceTag)
	s.cache.Delete(serviceTag + "id:" + p.ID)
	s.cache.Delete(serviceTag + "slug:" + p.Slug)
}
