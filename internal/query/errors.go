package query

import "errors"

var (
	// ErrMissingCredentials means the login request had an empty username or
	// password; the handler maps it to 400.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrInvalidCredentials means no account matched both username and
	// password; the handler maps it to 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
