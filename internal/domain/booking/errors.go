package booking

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("status transition is not allowed")
	ErrNotParticipant     = errors.New("you are not a participant of this booking")
	ErrRoleNotPermitted   = errors.New("your role cannot apply this status")
	ErrProfessionalAbsent = errors.New("professional profile not found")
	ErrCustomerAbsent     = errors.New("customer profile not found")
)
