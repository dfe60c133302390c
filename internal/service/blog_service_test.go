package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
)

type fakeBlogStore struct {
	mu        sync.Mutex
	blogs     map[string]model.Blog
	listCalls int
	findCalls int
	viewed    chan string
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{
		blogs:  map[string]model.Blog{},
		viewed: make(chan string, 16),
	}
}

func (s *fakeBlogStore) List(_ context.Context, filter model.BlogFilter) ([]model.Blog, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++
	out := make([]model.Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		if filter.PublishedOnly && !b.Published {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (s *fakeBlogStore) FindByID(_ context.Context, id string) (model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return model.Blog{}, model.ErrBlogNotFound
	}
	return b, nil
}

func (s *fakeBlogStore) FindBySlug(_ context.Context, slug string) (model.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findCalls++
	for _, b := range s.blogs {
		if b.Slug == slug {
			return b, nil
		}
	}
	return model.Blog{}, model.ErrBlogNotFound
}

func (s *fakeBlogStore) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blogs {
		if b.Slug == slug && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeBlogStore) Create(_ context.Context, b model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blogs[b.ID] = b
	return nil
}

func (s *fakeBlogStore) Update(_ context.Context, b model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[b.ID]; !ok {
		return model.ErrBlogNotFound
	}
	s.blogs[b.ID] = b
	return nil
}

func (s *fakeBlogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (s *fakeBlogStore) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	b, ok := s.blogs[id]
	if ok {
		b.Views++
		s.blogs[id] = b
	}
	s.mu.Unlock()

	s.viewed <- id
	return nil
}

func newTestBlogService() (*BlogService, *fakeBlogStore) {
	store := newFakeBlogStore()
	return NewBlogService(store, cache.New(time.Minute), nil), store
}

func TestBlogListCaches(t *testing.T) {
	svc, store := newTestBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, model.BlogInput{Title: "First Post", Content: "body"}, "tester")
	require.NoError(t, err)

	filter := model.BlogFilter{Page: 1, Limit: 10}
	items, total, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)

	_, _, err = svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)

	// A different filter is a different cache key.
	_, _, err = svc.List(ctx, model.BlogFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestBlogMutationInvalidatesList(t *testing.T) {
	svc, store := newTestBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.BlogInput{Title: "First Post", Content: "body"}, "tester")
	require.NoError(t, err)

	filter := model.BlogFilter{Page: 1, Limit: 10}
	_, _, err = svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)

	_, err = svc.Update(ctx, created.ID, model.BlogInput{Title: "Renamed"}, "tester")
	require.NoError(t, err)

	items, _, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
	assert.Equal(t, "Renamed", items[0].Title)
}

func TestBlogSlugDerivedAndUniquified(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	first, err := svc.Create(ctx, model.BlogInput{Title: "Estate Planning 101", Content: "body"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "estate-planning-101", first.Slug)

	second, err := svc.Create(ctx, model.BlogInput{Title: "Estate Planning 101", Content: "body"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "estate-planning-101-2", second.Slug)
}

func TestBlogExplicitSlugConflictRejected(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, model.BlogInput{Title: "One", Slug: "shared", Content: "body"}, "tester")
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.BlogInput{Title: "Two", Slug: "shared", Content: "body"}, "tester")
	require.ErrorIs(t, err, model.ErrSlugTaken)
}

func TestBlogGetBySlugCountsView(t *testing.T) {
	svc, store := newTestBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.BlogInput{Title: "Post", Content: "body"}, "tester")
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, created.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	select {
	case id := <-store.viewed:
		assert.Equal(t, created.ID, id)
	case <-time.After(time.Second):
		t.Fatal("view count was never recorded")
	}

	// The cached read must not bump the counter again without countView.
	_, err = svc.GetBySlug(ctx, created.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, 1, store.findCalls)
	select {
	case <-store.viewed:
		t.Fatal("unexpected view count")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBlogSlugChangeDropsOldCacheEntry(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.BlogInput{Title: "Post", Content: "body"}, "tester")
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, created.Slug, false)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, model.BlogInput{Slug: "renamed-post"}, "tester")
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, created.Slug, false)
	require.ErrorIs(t, err, model.ErrBlogNotFound)

	got, err := svc.GetBySlug(ctx, "renamed-post", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestBlogDelete(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.BlogInput{Title: "Post", Content: "body"}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, "tester"))

	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, model.ErrBlogNotFound)

	err = svc.Delete(ctx, created.ID, "tester")
	require.ErrorIs(t, err, model.ErrBlogNotFound)
}
