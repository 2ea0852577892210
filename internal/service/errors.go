package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrNoPendingCode      = errors.New("no pending verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeMismatch       = errors.New("invalid verification code")

	// ErrCorruptDigest signals a malformed stored password hash. It is a
	// data-integrity failure, not a domain error.
	ErrCorruptDigest = errors.New("corrupt password digest")
)
