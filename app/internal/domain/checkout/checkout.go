package checkout

import (
	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domorder "example.com/branch-cart/app/internal/domain/order"
)

type State string

const (
	StateIdle                  State = "IDLE"
	StateAwaitingPaymentMethod State = "AWAITING_PAYMENT_METHOD"
	StateAwaitingBranch        State = "AWAITING_BRANCH"
	StateDispatching           State = "DISPATCHING"
)

func (s State) String() string {
	return string(s)
}

// Prompting reports whether the state waits on a user choice.
func (s State) Prompting() bool {
	return s == StateAwaitingPaymentMethod || s == StateAwaitingBranch
}

// Status is what the presentation layer renders for an ongoing checkout.
type Status struct {
	State          State
	PaymentMethod  *domorder.PaymentMethod
	SelectedBranch *dombranch.Branch
	LastOrder      *domorder.Order
}
