package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender marks which side of the support thread wrote a message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderSupport Sender = "support"
)

// Message is one line in a user's support thread. Each user has exactly one
// thread, keyed by their id.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Sender    Sender    `db:"sender" json:"sender"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
