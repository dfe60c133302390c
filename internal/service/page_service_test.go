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

type fakePageStore struct {
	mu        sync.Mutex
	pages     map[string]model.Page
	findCalls int
}

func (s *fakePageStore) Find(_ context.Context, key string) (model.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findCalls++
	p, ok := s.pages[key]
	if !ok {
		return model.Page{}, model.ErrPageNotFound
	}
	return p, nil
}

func (s *fakePageStore) Update(_ context.Context, p model.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[p.Key] = p
	return nil
}

func newTestPageService() (*PageService, *fakePageStore) {
	store := &fakePageStore{pages: map[string]model.Page{
		"about":   {Key: "about", Title: "About Us", Body: "history"},
		"contact": {Key: "contact", Title: "Contact", Body: "address"},
	}}
	return NewPageService(store, cache.New(time.Minute), nil), store
}

func TestPageGetRejectsUnknownKey(t *testing.T) {
	svc, _ := newTestPageService()

	_, err := svc.Get(context.Background(), "pricing")
	require.ErrorIs(t, err, model.ErrPageNotFound)
}

func TestPageGetCaches(t *testing.T) {
	svc, store := newTestPageService()
	ctx := context.Background()

	page, err := svc.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "About Us", page.Title)

	_, err = svc.Get(ctx, "About ")
	require.NoError(t, err)
	assert.Equal(t, 1, store.findCalls)
}

func TestPageUpdateInvalidatesCache(t *testing.T) {
	svc, _ := newTestPageService()
	ctx := context.Background()

	_, err := svc.Get(ctx, "contact")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "contact", model.PageInput{Body: "new address"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "new address", updated.Body)
	assert.Equal(t, "Contact", updated.Title)

	page, err := svc.Get(ctx, "contact")
	require.NoError(t, err)
	assert.Equal(t, "new address", page.Body)
}

func TestPageUpdateRequiresContent(t *testing.T) {
	svc, _ := newTestPageService()

	_, err := svc.Update(context.Background(), "about", model.PageInput{}, "tester")
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
}
