package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type BlogStore interface {
	List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, int, error)
	FindByID(ctx context.Context, id string) (model.Blog, error)
	FindBySlug(ctx context.Context, slug string) (model.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, b model.Blog) error
	Update(ctx context.Context, b model.Blog) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

const (
	blogTag     = "blog:"
	blogListTTL = 10 * time.Minute
	blogItemTTL = 5 * time.Minute

	viewCountTimeout = 5 * time.Second
)

type blogPage struct {
	Items []model.Blog
	Total int
}

type BlogService struct {
	store BlogStore
	cache *cache.Cache
	audit *AuditService
}

func NewBlogService(store BlogStore, c *cache.Cache, audit *AuditService) *BlogService {
	return &BlogService{store: store, cache: c, audit: audit}
}

func (s *BlogService) List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, int, error) {
	filter = filter.Normalize()
	key := fmt.Sprintf("%slist:p%d:l%d:cat:%s:pub:%t",
		blogTag, filter.Page, filter.Limit, filter.Category, filter.PublishedOnly)

	page, err := cache.Wrap(ctx, s.cache, key, blogListTTL,
		func(ctx context.Context) (blogPage, error) {
			items, total, err := s.store.List(ctx, filter)
			if err != nil {
				return blogPage{}, err
			}
			return blogPage{Items: items, Total: total}, nil
		})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

// GetBySlug serves a single post through the cache. When countView is set
// the view counter is bumped in a detached task that can neither block nor
// fail the read.
func (s *BlogService) GetBySlug(ctx context.Context, slug string, countView bool) (model.Blog, error) {
	blog, err := cache.Wrap(ctx, s.cache, blogTag+"slug:"+slug, blogItemTTL,
		func(ctx context.Context) (model.Blog, error) {
			return s.store.FindBySlug(ctx, slug)
		})
	if err != nil {
		return model.Blog{}, err
	}

	if countView {
		go func(id string) {
			ctx, cancel := context.WithTimeout(context.Background(), viewCountTimeout)
			defer cancel()
			if err := s.store.IncrementViews(ctx, id); err != nil {
				slog.Warn("view count increment failed", "blog_id", id, "error", err)
			}
		}(blog.ID)
	}

	return blog, nil
}

func (s *BlogService) GetByID(ctx context.Context, id string) (model.Blog, error) {
	return cache.Wrap(ctx, s.cache, blogTag+"id:"+id, blogItemTTL,
		func(ctx context.Context) (model.Blog, error) {
			return s.store.FindByID(ctx, id)
		})
}

func (s *BlogService) Create(ctx context.Context, input model.BlogInput, actor string) (model.Blog, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Blog{}, apierror.New("BAD_REQUEST", "title is required", "title", http.StatusBadRequest)
	}
	if strings.TrimSpace(input.Content) == "" {
		return model.Blog{}, apierror.New("BAD_REQUEST", "content is required", "content", http.StatusBadRequest)
	}

	slug, err := resolveSlug(ctx, strings.TrimSpace(input.Slug), input.Title, "", s.store.SlugExists)
	if err != nil {
		return model.Blog{}, err
	}

	now := time.Now().UTC()
	blog := model.Blog{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(input.Title),
		Slug:      slug,
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Content:   input.Content,
		Category:  strings.TrimSpace(input.Category),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Published != nil {
		blog.Published = *input.Published
	}

	if err := s.store.Create(ctx, blog); err != nil {
		return model.Blog{}, err
	}

	s.invalidate(blog)
	s.audit.Record(ctx, actor, "create", "blog", blog.ID)
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, id string, input model.BlogInput, actor string) (model.Blog, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Blog{}, err
	}

	oldSlug := existing.Slug

	if strings.TrimSpace(input.Title) != "" {
		existing.Title = strings.TrimSpace(input.Title)
	}
	// The slug stays stable across edits unless explicitly changed.
	if supplied := strings.TrimSpace(input.Slug); supplied != "" && supplied != existing.Slug {
		slug, err := resolveSlug(ctx, supplied, existing.Title, id, s.store.SlugExists)
		if err != nil {
			return model.Blog{}, err
		}
		existing.Slug = slug
	}
	if input.Excerpt != "" {
		existing.Excerpt = strings.TrimSpace(input.Excerpt)
	}
	if input.Content != "" {
		existing.Content = input.Content
	}
	if input.Category != "" {
		existing.Category = strings.TrimSpace(input.Category)
	}
	if input.ImageURL != "" {
		existing.ImageURL = strings.TrimSpace(input.ImageURL)
	}
	if input.Published != nil {
		existing.Published = *input.Published
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, existing); err != nil {
		return model.Blog{}, err
	}

	s.invalidate(existing)
	s.cache.Delete(blogTag + "slug:" + oldSlug)
	s.audit.Record(ctx, actor, "update", "blog", id)
	return existing, nil
}

func (s *BlogService) Delete(ctx context.Context, id string, actor string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(existing)
	s.audit.Record(ctx, actor, "delete", "blog", id)
	return nil
}

// invalidate clears the whole blog family plus the exact single-item keys.
// The pattern sweep already covers both; the explicit deletes keep the
// single-item keys correct even if the family tag ever changes.
func (s *BlogService) invalidate(b model.Blog) {
	s.cache.InvalidatePattern(blogTag)
	s.cache.Delete(blogTag + "id:" + b.ID)
	s.cache.Delete(blogTag + "slug:" + b.Slug)
}
