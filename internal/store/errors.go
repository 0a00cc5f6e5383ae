package store

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthRequired       = errors.New("authentication required")
	ErrAlreadySaved       = errors.New("voucher already saved")
	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrProductNotFound    = errors.New("product not found")
)
