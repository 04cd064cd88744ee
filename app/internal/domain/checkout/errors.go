package checkout

import "errors"

var (
	// Advisory: the sequencer is back to idle and nothing was dispatched.
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingBranchContact = errors.New("branch number missing")

	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidTransition    = errors.New("invalid checkout transition")
)

const (
	NoticeEmptyCart            = "EMPTY_CART"
	NoticeMissingBranchContact = "MISSING_BRANCH_CONTACT"
)

// Notice returns the user-facing notice code for advisory errors, or "".
func Notice(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return NoticeEmptyCart
	case errors.Is(err, ErrMissingBranchContact):
		return NoticeMissingBranchContact
	default:
		return ""
	}
}
