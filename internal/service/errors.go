package service

import "errors"

var (
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrInvalidLine        = errors.New("order line needs a product id and a positive quantity")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrAddressNotFound    = errors.New("shipping address not found")
	ErrInvalidAddress     = errors.New("address needs street, city and postal code")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInventoryNotFound  = errors.New("inventory item not found")
)
