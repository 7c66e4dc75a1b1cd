package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxBodyLength = 2000

type Service struct {
	repo *Repository
	hub  *Hub
}

func NewService(repo *Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Send stores a message in the user's support thread and pushes it to every
// open connection for that user.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, sender Sender, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrBodyRequired
	}
	if len(body) > maxBodyLength {
		return nil, ErrBodyTooLong
	}

	m := &Message{
		UserID: userID,
		Sender: sender,
		Body:   body,
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}

	s.hub.SendToUser(userID, &WSEvent{Type: EventNewMessage, Message: m})

	log.Debug().
		Str("user_id", userID.String()).
		Str("sender", string(sender)).
		Msg("support message stored")

	return m, nil
}

// Thread returns the user's support conversation, oldest first.
func (s *Service) Thread(ctx context.Context, userID uuid.UUID, limit int) ([]Message, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}
