package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores one support message.
func (r *Repository) Insert(ctx context.Context, m *Message) error {
	m.ID = uuid.New()
	return r.db.GetContext(ctx, &m.CreatedAt, `
		INSERT INTO support_messages (id, user_id, sender, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, m.ID, m.UserID, m.Sender, m.Body)
}

// ListByUser returns the user's support thread oldest-first, the order the
// conversation renders in.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	messages := []Message{}
	err := r.db.SelectContext(ctx, &messages, `
		SELECT id, user_id, sender, body, created_at
		FROM support_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`, userID, limit)
	return messages, err
}
