package cart

import (
	"slices"

	domcart "example.com/branch-cart/app/internal/domain/cart"
	domproduct "example.com/branch-cart/app/internal/domain/product"
)

// Store owns the line items of one cart. It is not safe for concurrent use;
// callers serialise access per session.
type Store struct {
	items    []domcart.LineItem
	revision uint64
}

func NewStore() *Store {
	return &Store{items: []domcart.LineItem{}}
}

// Add increments the line for p, or appends a new line with quantity 1.
func (s *Store) Add(p domproduct.Product) {
	next := slices.Clone(s.items)
	if i := s.indexOf(p.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, domcart.NewLineItem(p))
	}
	s.replace(next)
}

// Remove decrements the line for productID and drops it at zero.
// It reports whether the cart changed.
func (s *Store) Remove(productID int64) bool {
	i := s.indexOf(productID)
	if i < 0 {
		return false
	}

	next := make([]domcart.LineItem, 0, len(s.items))
	for j, item := range s.items {
		if j == i {
			item.Quantity--
			if item.Quantity <= 0 {
				continue
			}
		}
		next = append(next, item)
	}
	s.replace(next)
	return true
}

func (s *Store) Clear() {
	s.replace([]domcart.LineItem{})
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domcart.LineItem {
	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Store) Total() float64 {
	return domcart.Total(s.items)
}

// Revision increases on every mutation; equal revisions mean equal contents.
func (s *Store) Revision() uint64 {
	return s.revision
}

func (s *Store) Snapshot() domcart.Cart {
	return domcart.Cart{
		Items:     s.Items(),
		Total:     s.Total(),
		ItemCount: domcart.Count(s.items),
		Revision:  s.revision,
	}
}

func (s *Store) indexOf(productID int64) int {
	return slices.IndexFunc(s.items, func(item domcart.LineItem) bool {
		return item.ProductID == productID
	})
}

func (s *Store) replace(items []domcart.LineItem) {
	s.items = items
	s.revision++
}
