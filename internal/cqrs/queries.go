package cqrs

// LoginQuery authenticates by exact username/password match. Login lives on
// the query side: it reads account state and mutates nothing.
type LoginQuery struct {
	Username string
	Password string
}

// GetMessageQuery fetches a single message by id.
type GetMessageQuery struct {
	MessageID int
}

// ListMessagesByAccountQuery fetches all messages posted by one account.
type ListMessagesByAccountQuery struct {
	AccountID int
}
