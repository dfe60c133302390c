package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawfirm-cms/internal/model"
)

type fakeSubscriberStore struct {
	mu      sync.Mutex
	byEmail map[string]model.Subscriber
}

func (s *fakeSubscriberStore) Subscribe(_ context.Context, sub model.Subscriber) (model.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byEmail[sub.Email]; ok {
		existing.Active = true
		s.byEmail[sub.Email] = existing
		return existing, nil
	}
	s.byEmail[sub.Email] = sub
	return sub, nil
}

func (s *fakeSubscriberStore) List(_ context.Context, page int, limit int) ([]model.Subscriber, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Subscriber, 0, len(s.byEmail))
	for _, sub := range s.byEmail {
		out = append(out, sub)
	}
	return out, len(out), nil
}

func (s *fakeSubscriberStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, sub := range s.byEmail {
		if sub.ID == id {
			delete(s.byEmail, email)
			return nil
		}
	}
	return model.ErrSubscriberNotFound
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	svc := NewSubscriberService(&fakeSubscriberStore{byEmail: map[string]model.Subscriber{}}, nil)

	sub, err := svc.Subscribe(context.Background(), "  Reader@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.True(t, sub.Active)
}

func TestSubscribeIsIdempotent(t *testing.T) {
	svc := NewSubscriberService(&fakeSubscriberStore{byEmail: map[string]model.Subscriber{}}, nil)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)

	second, err := svc.Subscribe(ctx, "READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, total, err := svc.List(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc := NewSubscriberService(&fakeSubscriberStore{byEmail: map[string]model.Subscriber{}}, nil)

	_, err := svc.Subscribe(context.Background(), "not an email")
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
}

func TestSubscriberDelete(t *testing.T) {
	svc := NewSubscriberService(&fakeSubscriberStore{byEmail: map[string]model.Subscriber{}}, nil)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sub.ID, "tester"))
	require.ErrorIs(t, svc.Delete(ctx, sub.ID, "tester"), model.ErrSubscriberNotFound)
}
