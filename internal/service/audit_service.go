package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lawfirm-cms/internal/model"
)

type AuditStore interface {
	Insert(ctx context.Context, e model.AuditEntry) error
	List(ctx context.Context, page int, limit int) ([]model.AuditEntry, int, error)
}

// AuditService records admin mutations. Recording is best effort: a failed
// insert is logged and never fails the mutation that triggered it.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, actor string, action string, entity string, entityID string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, entry); err != nil {
		slog.Error("audit record failed", "actor", actor, "action", action,
			"entity", entity, "entity_id", entityID, "error", err)
	}
}

func (s *AuditService) List(ctx context.Context, page int, limit int) ([]model.AuditEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.List(ctx, page, limit)
}
