package booking

import "errors"

var (
	ErrServiceRequired = errors.New("service is required")
	ErrDateRequired    = errors.New("date is required")
	ErrInvalidDate     = errors.New("date is in the past or on a closed day")
	ErrTimeRequired    = errors.New("time slot is required")
	ErrUnknownTimeSlot = errors.New("unknown time slot")
	ErrNotReady        = errors.New("booking is not ready to submit")
)
