package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("email and password required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordsRequired   = errors.New("current and new password required")
	ErrIncorrectPassword   = errors.New("incorrect current password")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidToken        = errors.New("invalid token")
)
