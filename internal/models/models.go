package models

// Account is a registered user identity. The password is stored and compared
// in plaintext and echoed back on register/login; the original API contract
// exposes it, so the field is serialized rather than hidden.
type Account struct {
	AccountID int    `json:"accountId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Message is a text post authored by an Account. MessageTime is an epoch
// value carried through unchanged; the service never validates it.
type Message struct {
	MessageID   int    `json:"messageId"`
	PostedBy    int    `json:"postedBy"`
	MessageText string `json:"messageText"`
	MessageTime int64  `json:"messageTime"`
}
