package profile

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrCustomerNotFound = errors.New("customer profile not found")
)
