package models

import (
	"time"
)

// Sender identifies who authored a chat widget message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageKind is the render hint for a chat widget message.
// The bot only produces plain text.
type MessageKind string

const MessageKindText MessageKind = "text"

// ChatMessage represents a single message in a chat widget session.
// These live only in memory for the lifetime of the session.
type ChatMessage struct {
	ID        string      `json:"id"` // "msg-N", unique within the session log
	Content   string      `json:"content"`
	Sender    Sender      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageKind `json:"type"`
}
