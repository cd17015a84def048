package pricing

import "errors"

var (
	// ErrCustomerNotFound means the customer id resolved to no user.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNoDefaultAddress means the customer exists but has no default
	// delivery address to price against.
	ErrNoDefaultAddress = errors.New("customer has no default address")
	// ErrRestaurantNotFound means the restaurant id is unknown.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMissingLocation means the address or restaurant lacks coordinates,
	// so distance and delivery fee cannot be computed.
	ErrMissingLocation = errors.New("delivery address or restaurant has no location")
	// ErrInvalidLineItems means at least one requested menu item does not
	// belong to the target restaurant. Rejection is all-or-nothing.
	ErrInvalidLineItems = errors.New("one or more menu items do not belong to this restaurant")
	// ErrInvalidQuantity means a line quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)
