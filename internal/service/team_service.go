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

type TeamStore interface {
	List(ctx context.Context) ([]model.TeamMember, error)
	FindByID(ctx context.Context, id string) (model.TeamMember, error)
	Create(ctx context.Context, m model.TeamMember) error
	Update(ctx context.Context, m model.TeamMember) error
	Delete(ctx context.Context, id string) error
}

const (
	teamTag     = "team:"
	teamListTTL = 10 * time.Minute
	teamItemTTL = 10 * time.Minute
)

type TeamService struct {
	store TeamStore
	cache *cache.Cache
	audit *AuditService
}

func NewTeamService(store TeamStore, c *cache.Cache, audit *AuditService) *TeamService {
	return &TeamService{store: store, cache: c, audit: audit}
}

func (s *TeamService) List(ctx context.Context) ([]model.TeamMember, error) {
	return cache.Wrap(ctx, s.cache, teamTag+"list", teamListTTL,
		func(ctx context.Context) ([]model.TeamMember, error) {
			return s.store.List(ctx)
		})
}

func (s *TeamService) GetByID(ctx context.Context, id string) (model.TeamMember, error) {
	return cache.Wrap(ctx, s.cache, teamTag+"id:"+id, teamItemTTL,
		func(ctx context.Context) (model.TeamMember, error) {
			return s.store.FindByID(ctx, id)
		})
}

func (s *TeamService) Create(ctx context.Context, input model.TeamMemberInput, actor string) (model.TeamMember, error) {
	if strings.TrimSpace(input.Name) == "" {
		return model.TeamMember{}, apierror.New("BAD_REQUEST", "name is required", "name", http.StatusBadRequest)
	}

	now := time.Now().UTC()
	member := model.TeamMember{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Position:     strings.TrimSpace(input.Position),
		Bio:          input.Bio,
		PhotoURL:     strings.TrimSpace(input.PhotoURL),
		Email:        strings.TrimSpace(input.Email),
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, member); err != nil {
		return model.TeamMember{}, err
	}

	s.invalidate(member.ID)
	s.audit.Record(ctx, actor, "create", "team_member", member.ID)
	return member, nil
}

func (s *TeamService) Update(ctx context.Context, id string, input model.TeamMemberInput, actor string) (model.TeamMember, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.TeamMember{}, err
	}

	if strings.TrimSpace(input.Name) != "" {
		existing.Name = strings.TrimSpace(input.Name)
	}
	if input.Position != "" {
		existing.Position = strings.TrimSpace(input.Position)
	}
	if input.Bio != "" {
		existing.Bio = input.Bio
	}
	if input.PhotoURL != "" {
		existing.PhotoURL = strings.TrimSpace(input.PhotoURL)
	}
	if input.Email != "" {
		existing.Email = strings.TrimSpace(input.Email)
	}
	if input.DisplayOrder != 0 {
		existing.DisplayOrder = input.DisplayOrder
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, existing); err != nil {
		return model.TeamMember{}, err
	}

	s.invalidate(id)
	s.audit.Record(ctx, actor, "update", "team_member", id)
	return existing, nil
}

func (s *TeamService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(id)
	s.audit.Record(ctx, actor, "delete", "team_member", id)
	return nil
}

func (s *TeamService) invalidate(id string) {
	s.cache.InvalidatePattern(teamTag)
	s.cache.Delete(teamTag + "id:" + id)
}
