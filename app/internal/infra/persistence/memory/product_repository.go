package memory

import (
	"context"
	"fmt"

	domproduct "example.com/branch-cart/app/internal/domain/product"
)

// ProductRepository serves a fixed catalog. Records are copied in and out.
type ProductRepository struct {
	products []domproduct.Product
	byID     map[int64]int
}

func NewProductRepository(products []domproduct.Product) (*ProductRepository, error) {
	r := &ProductRepository{
		products: make([]domproduct.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d: negative price", p.ID)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	out := make([]*domproduct.Product, 0, len(r.products))
	for _, p := range r.products {
		cloned := p
		out = append(out, &cloned)
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := r.products[i]
	return &cloned, nil
}
