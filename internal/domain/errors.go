package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotYetExpired     = errors.New("not yet expired")
	ErrConflict          = errors.New("conflict")
)
