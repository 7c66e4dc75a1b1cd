package user

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// User is a storefront account. Credentials live with the external auth
// provider; UID is its subject identifier.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UID       string    `db:"uid" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Status    Status    `db:"status" json:"status"`
	PhotoURL  string    `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile is the /me payload: account plus wallet balance.
type Profile struct {
	User
	Balance int64 `json:"balance"`
}
