package cart

import (
	"fmt"

	domproduct "example.com/branch-cart/app/internal/domain/product"
)

// LineItem aggregates the quantity of one distinct product in a cart.
type LineItem struct {
	ProductID int64
	Name      string
	Price     float64
	Image     string
	Quantity  int64
}

func NewLineItem(p domproduct.Product) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	}
}

func (i LineItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is a read-only view of a cart store at a given revision.
type Cart struct {
	Items     []LineItem
	Total     float64
	ItemCount int64
	Revision  uint64
}

// Total sums price * quantity over items. No rounding is applied.
func Total(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the number of units across all line items.
func Count(items []LineItem) int64 {
	var n int64
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// FormatAmount renders an amount for display with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
