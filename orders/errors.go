package orders

import "errors"

var (
	// ErrValidation means the placement request was malformed. Validation
	// failures never reach pricing or persistence.
	ErrValidation = errors.New("invalid order request")
	// ErrEmptyCart means checkout was attempted with no cart items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPersistence means the transactional order write failed.
	ErrPersistence = errors.New("failed to persist order")
)
