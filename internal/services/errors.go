package services

import "errors"

// Service-level failures the handlers translate into HTTP statuses.
var (
	// ErrUserNotFound means no account exists for the supplied email.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountDeactivated means the account exists but may not log in.
	ErrAccountDeactivated = errors.New("account deactivated")
	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields means required request fields were absent.
	ErrMissingFields = errors.New("missing required fields")

	// Registration conflicts identify which side of the email pre-check hit.
	ErrUserEmailTaken     = errors.New("a user with this email already exists")
	ErrBusinessEmailTaken = errors.New("a business with this email already exists")
	ErrBothEmailsTaken    = errors.New("a user and a business with these emails already exist")
)
