package events

import "time"

// Event types
const (
	AccountRegistered = "account.registered"

	MessageCreated = "message.created"
	MessageUpdated = "message.updated"
	MessageDeleted = "message.deleted"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	MessageEventsStream = "message.events"
)

// Event is the envelope written to the Redis stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountRegisteredEvent struct {
	AccountID int    `json:"accountId"`
	Username  string `json:"username"`
}

type MessageCreatedEvent struct {
	MessageID int `json:"messageId"`
	PostedBy  int `json:"postedBy"`
}

type MessageUpdatedEvent struct {
	MessageID int `json:"messageId"`
}

type MessageDeletedEvent struct {
	MessageID int `json:"messageId"`
}
