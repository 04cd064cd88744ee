package product

import "context"

// Repository is the read-only catalog source. List keeps catalog order.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}
