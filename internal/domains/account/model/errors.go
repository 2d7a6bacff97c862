package model

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("an account with this email already exists")
	ErrInvalidRole      = errors.New("invalid role")
)

// Service-level errors
var (
	// Same error for unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrForbidden    = errors.New("insufficient role")
)
