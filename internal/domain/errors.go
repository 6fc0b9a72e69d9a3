package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (e.g. duplicate email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart rejects a checkout attempted with no lines in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)
