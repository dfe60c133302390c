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

type InquiryStore interface {
	Create(ctx context.Context, q model.Inquiry) error
	List(ctx context.Context, status string, page int, limit int) ([]model.Inquiry, int, error)
	FindByID(ctx context.Context, id string) (model.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

const (
	maxInquirySubject = 200
	maxInquiryMessage = 5000
)

var validInquiryStatuses = map[string]struct{}{
	model.InquiryStatusNew:      {},
	model.InquiryStatusRead:     {},
	model.InquiryStatusArchived: {},
}

type InquiryService struct {
	store InquiryStore
	audit *AuditService
}

func NewInquiryService(store InquiryStore, audit *AuditService) *InquiryService {
	return &InquiryService{store: store, audit: audit}
}

// Create validates and records a public contact inquiry.
func (s *InquiryService) Create(ctx context.Context, input model.InquiryInput) (model.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "name is required", "name", http.StatusBadRequest)
	}
	if message == "" {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "message is required", "message", http.StatusBadRequest)
	}
	if len(message) > maxInquiryMessage {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "message is too long", "message", http.StatusBadRequest)
	}
	if len(input.Subject) > maxInquirySubject {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "subject is too long", "subject", http.StatusBadRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "a valid email address is required", "email", http.StatusBadRequest)
	}

	inquiry := model.Inquiry{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   message,
		Status:    model.InquiryStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, inquiry); err != nil {
		return model.Inquiry{}, err
	}
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context, status string, page int, limit int) ([]model.Inquiry, int, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" {
		if _, ok := validInquiryStatuses[status]; !ok {
			return nil, 0, apierror.New("BAD_REQUEST", "unknown inquiry status", status, http.StatusBadRequest)
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	return s.store.List(ctx, status, page, limit)
}

func (s *InquiryService) Get(ctx context.Context, id string) (model.Inquiry, error) {
	return s.store.FindByID(ctx, id)
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id string, status string, actor string) (model.Inquiry, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := validInquiryStatuses[status]; !ok {
		return model.Inquiry{}, apierror.New("BAD_REQUEST", "unknown inquiry status", status, http.StatusBadRequest)
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return model.Inquiry{}, err
	}

	s.audit.Record(ctx, actor, "update_status", "inquiry", id)
	return s.store.FindByID(ctx, id)
}

func (s *InquiryService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "delete", "inquiry", id)
	return nil
}
