package authservice

import "errors"

var (
	// ErrInvalidToken is returned when the session token is invalid.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned when the session token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidEmail is returned when the email is not usable.
	ErrInvalidEmail = errors.New("email is invalid")

	// ErrPasswordRequired is returned when no password was given.
	ErrPasswordRequired = errors.New("password is required")

	// ErrPasswordTooShort is returned when the password is shorter than MinPasswordLength.
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("a user already exists with this email")
)
