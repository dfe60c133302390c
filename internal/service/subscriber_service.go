package service

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type SubscriberStore interface {
	Subscribe(ctx context.Context, s model.Subscriber) (model.Subscriber, error)
	List(ctx context.Context, page int, limit int) ([]model.Subscriber, int, error)
	Delete(ctx context.Context, id string) error
}

type SubscriberService struct {
	store SubscriberStore
	audit *AuditService
}

func NewSubscriberService(store SubscriberStore, audit *AuditService) *SubscriberService {
	return &SubscriberService{store: store, audit: audit}
}

// Subscribe is public and idempotent: re-subscribing a known email simply
// reactivates it.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Subscriber{}, apierror.New("BAD_REQUEST", "a valid email address is required", "email", http.StatusBadRequest)
	}

	return s.store.Subscribe(ctx, model.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *SubscriberService) List(ctx context.Context, page int, limit int) ([]model.Subscriber, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.List(ctx, page, limit)
}

func (s *SubscriberService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "delete", "subscriber", id)
	return nil
}
