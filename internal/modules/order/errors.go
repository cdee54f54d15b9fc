package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrder            = errors.New("order has no items")
	ErrMissingCustomerInfo   = errors.New("customer name and phone are required")
	ErrOrderAlreadyCompleted = errors.New("order already completed")
	ErrOrderNotFound         = errors.New("order not found")
	ErrCustomerNotFound      = errors.New("customer not found")
)

// TooManyItemsError reports an addition that would exceed
// business.maxOrderItems.
type TooManyItemsError struct {
	Limit int
}

func (e *TooManyItemsError) Error() string {
	return fmt.Sprintf("order is limited to %d items", e.Limit)
}

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	From, To OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
