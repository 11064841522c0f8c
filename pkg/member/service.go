package member

import (
	"context"
	"fmt"
)

// Service resolves session identity and lists the lab roster. It is the
// boundary to the wider membership subsystem; the calendar only needs these
// two operations.
type Service interface {
	GetMemberByUID(ctx context.Context, uid string) (Member, error)
	ListLabMembers(ctx context.Context) ([]Member, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetMemberByUID(ctx context.Context, uid string) (Member, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *ServiceImpl) ListLabMembers(ctx context.Context) ([]Member, error) {
	labId, err := CurrentLabID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current member: %w", err)
	}
	return s.repo.ListByLab(ctx, labId)
}
