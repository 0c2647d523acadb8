package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation. It is never modified after being appended.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}
