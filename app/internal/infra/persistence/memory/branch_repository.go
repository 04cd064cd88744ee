package memory

import (
	"context"
	"fmt"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
)

type BranchRepository struct {
	branches []dombranch.Branch
	byID     map[int64]int
}

func NewBranchRepository(branches []dombranch.Branch) (*BranchRepository, error) {
	r := &BranchRepository{
		branches: make([]dombranch.Branch, 0, len(branches)),
		byID:     make(map[int64]int, len(branches)),
	}
	for _, b := range branches {
		if _, dup := r.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate branch id %d", b.ID)
		}
		r.byID[b.ID] = len(r.branches)
		r.branches = append(r.branches, b)
	}
	return r, nil
}

func (r *BranchRepository) List(ctx context.Context) ([]*dombranch.Branch, error) {
	out := make([]*dombranch.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		cloned := b
		out = append(out, &cloned)
	}
	return out, nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*dombranch.Branch, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, dombranch.ErrBranchNotFound
	}
	cloned := r.branches[i]
	return &cloned, nil
}
