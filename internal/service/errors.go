package service

import "errors"

var (
	ErrAddressUnresolvable    = errors.New("address could not be located")
	ErrRestaurantUnresolvable = errors.New("restaurant address could not be located")
	ErrNotVerified            = errors.New("restaurant is not a verified candidate for the order")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrRestaurantNotAssigned  = errors.New("order has no preparing restaurant")

	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")

	ErrEmptyItems      = errors.New("empty items")
	ErrQuantityInvalid = errors.New("quantity must be > 0")
	ErrFieldRequired   = errors.New("field is required")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidPayment  = errors.New("invalid payment method")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNegativePrice   = errors.New("price must be >= 0")
	ErrInvalidPrice    = errors.New("invalid price")
)

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrEmptyItems, ErrQuantityInvalid, ErrFieldRequired, ErrInvalidPhone,
		ErrInvalidPayment, ErrInvalidStatus, ErrNegativePrice, ErrInvalidPrice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
