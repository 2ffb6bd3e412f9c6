package command

import "errors"

// Sentinel errors returned by the command services. Handlers map them to
// HTTP statuses with errors.Is.
var (
	// ErrInvalidAccount covers a blank username or a password shorter than
	// eight characters at registration.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrUsernameTaken means another account already holds the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidMessage covers empty or over-long text, a missing postedBy,
	// and a postedBy that resolves to no existing account.
	ErrInvalidMessage = errors.New("invalid message")

	ErrMessageNotFound  = errors.New("message not found")
	ErrMessageTextEmpty = errors.New("message text cannot be empty")
	ErrMessageTooLong   = errors.New("message text too long")
)
