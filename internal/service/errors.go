package service

import "errors"

// Error taxonomy of the core. The HTTP boundary maps these with
// errors.Is; anything else surfaces as a 500 with a constant body.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// ErrItemNotFound means the catalog cannot resolve an item id.
	// ErrNotInCart means the item resolved but the user's cart has no
	// line for it. The two are distinct conditions.
	ErrItemNotFound = errors.New("item not found")
	ErrNotInCart    = errors.New("item not in cart")
)
