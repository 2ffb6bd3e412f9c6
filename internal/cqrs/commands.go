package cqrs

type RegisterAccountCommand struct {
	Username string
	Password string
}

// CreateMessageCommand carries the fields of a new message. PostedBy is a
// pointer so a request that omitted it is distinguishable from account id 0.
type CreateMessageCommand struct {
	PostedBy    *int
	MessageText string
	MessageTime int64
}

type UpdateMessageTextCommand struct {
	MessageID   int
	MessageText string
}

type DeleteMessageCommand struct {
	MessageID int
}
