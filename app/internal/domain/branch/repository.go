package branch

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Branch, error)
	GetByID(ctx context.Context, id int64) (*Branch, error)
}
