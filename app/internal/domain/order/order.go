package order

import (
	"strconv"
	"strings"
	"time"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domcart "example.com/branch-cart/app/internal/domain/cart"
)

// PaymentMethod is recorded on the order but never charged.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard:
		return true
	default:
		return false
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	p := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Order is the receipt of a dispatched checkout.
type Order struct {
	PaymentMethod PaymentMethod
	Branch        dombranch.Branch
	Contact       string
	Items         []domcart.LineItem
	Total         float64
	Message       string
	DispatchedAt  time.Time
}

// Message renders one "<quantity> <name>" line per item, in cart order.
func Message(items []domcart.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, strconv.FormatInt(item.Quantity, 10)+" "+item.Name)
	}
	return strings.Join(lines, "\n")
}

// New builds the order receipt for items sent to branch over contact.
func New(method PaymentMethod, branch dombranch.Branch, contact string, items []domcart.LineItem, at time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrderItems
	}
	snapshot := make([]domcart.LineItem, len(items))
	copy(snapshot, items)
	return &Order{
		PaymentMethod: method,
		Branch:        branch,
		Contact:       contact,
		Items:         snapshot,
		Total:         domcart.Total(snapshot),
		Message:       Message(snapshot),
		DispatchedAt:  at,
	}, nil
}
