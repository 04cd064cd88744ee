package order

import "errors"

var (
	ErrEmptyOrderItems = errors.New("no items to order")
)
