package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawfirm-cms/internal/model"
)

type fakeInquiryStore struct {
	mu        sync.Mutex
	inquiries map[string]model.Inquiry
}

func newFakeInquiryStore() *fakeInquiryStore {
	return &fakeInquiryStore{inquiries: map[string]model.Inquiry{}}
}

func (s *fakeInquiryStore) Create(_ context.Context, q model.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inquiries[q.ID] = q
	return nil
}

func (s *fakeInquiryStore) List(_ context.Context, status string, page int, limit int) ([]model.Inquiry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Inquiry, 0, len(s.inquiries))
	for _, q := range s.inquiries {
		if status != "" && q.Status != status {
			continue
		}
		out = append(out, q)
	}
	return out, len(out), nil
}

func (s *fakeInquiryStore) FindByID(_ context.Context, id string) (model.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.inquiries[id]
	if !ok {
		return model.Inquiry{}, model.ErrInquiryNotFound
	}
	return q, nil
}

func (s *fakeInquiryStore) UpdateStatus(_ context.Context, id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.inquiries[id]
	if !ok {
		return model.ErrInquiryNotFound
	}
	q.Status = status
	s.inquiries[id] = q
	return nil
}

func (s *fakeInquiryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inquiries[id]; !ok {
		return model.ErrInquiryNotFound
	}
	delete(s.inquiries, id)
	return nil
}

func validInquiryInput() model.InquiryInput {
	return model.InquiryInput{
		Name:    "Jordan Blake",
		Email:   "jordan@example.com",
		Subject: "Consultation request",
		Message: "I need advice on a contract dispute.",
	}
}

func TestInquiryCreate(t *testing.T) {
	svc := NewInquiryService(newFakeInquiryStore(), nil)

	inquiry, err := svc.Create(context.Background(), validInquiryInput())
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusNew, inquiry.Status)
	assert.NotEmpty(t, inquiry.ID)
}

func TestInquiryCreateValidation(t *testing.T) {
	svc := NewInquiryService(newFakeInquiryStore(), nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.InquiryInput)
	}{
		{"missing name", func(in *model.InquiryInput) { in.Name = " " }},
		{"missing message", func(in *model.InquiryInput) { in.Message = "" }},
		{"bad email", func(in *model.InquiryInput) { in.Email = "not-an-email" }},
		{"message too long", func(in *model.InquiryInput) { in.Message = strings.Repeat("x", maxInquiryMessage+1) }},
		{"subject too long", func(in *model.InquiryInput) { in.Subject = strings.Repeat("x", maxInquirySubject+1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInquiryInput()
			tc.mutate(&input)

			_, err := svc.Create(ctx, input)
			require.Error(t, err)
			assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
		})
	}
}

func TestInquiryStatusTransitions(t *testing.T) {
	svc := NewInquiryService(newFakeInquiryStore(), nil)
	ctx := context.Background()

	inquiry, err := svc.Create(ctx, validInquiryInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, inquiry.ID, "READ", "tester")
	require.NoError(t, err)
	assert.Equal(t, model.InquiryStatusRead, updated.Status)

	_, err = svc.UpdateStatus(ctx, inquiry.ID, "resolved", "tester")
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
}

func TestInquiryListFiltersStatus(t *testing.T) {
	svc := NewInquiryService(newFakeInquiryStore(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInquiryInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInquiryInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, model.InquiryStatusArchived, "tester")
	require.NoError(t, err)

	archived, total, err := svc.List(ctx, model.InquiryStatusArchived, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, archived, 1)
	assert.Equal(t, first.ID, archived[0].ID)

	_, _, err = svc.List(ctx, "bogus", 1, 20)
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, err))
}
