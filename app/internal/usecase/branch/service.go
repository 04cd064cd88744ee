package branch

import (
	"context"

	dom "example.com/branch-cart/app/internal/domain/branch"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*dom.Branch, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Branch, error) {
	if id <= 0 {
		return nil, dom.ErrBranchNotFound
	}
	return s.repo.GetByID(ctx, id)
}
