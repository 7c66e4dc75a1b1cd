package user

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/topupbd/topup-api/internal/pkg/imaging"
	"github.com/topupbd/topup-api/internal/pkg/storage"
)

// BalanceReader exposes the wallet balance for the profile payload.
type BalanceReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Service struct {
	repo      *Repository
	wallet    BalanceReader
	media     *storage.Service
	processor *imaging.Processor
}

func NewService(repo *Repository, wallet BalanceReader, media *storage.Service) *Service {
	return &Service{
		repo:      repo,
		wallet:    wallet,
		media:     media,
		processor: imaging.NewProcessor(imaging.AvatarConfig()),
	}
}

// Profile returns the account plus its wallet balance. Accounts are created
// by the external auth provider; the local row is provisioned on first
// sight.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID, uid string) (*Profile, error) {
	if err := s.repo.Ensure(ctx, userID, uid, "", ""); err != nil {
		return nil, err
	}

	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: *u, Balance: balance}, nil
}

// UpdateName changes the display name.
func (s *Service) UpdateName(ctx context.Context, userID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	return s.repo.UpdateName(ctx, userID, name)
}

// UpdatePhoto resizes the uploaded avatar, stores it and swaps the profile
// URL. The previous object is deleted best-effort.
func (s *Service) UpdatePhoto(ctx context.Context, userID uuid.UUID, filename string, data []byte) (string, error) {
	processed, err := s.processor.Process(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	url, err := s.media.Put(ctx, "avatars", userID, filename, processed.ContentType, processed.Data)
	if err != nil {
		return "", err
	}

	previous, err := s.repo.UpdatePhotoURL(ctx, userID, url)
	if err != nil {
		return "", err
	}

	if previous != "" {
		if err := s.media.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("url", previous).Msg("failed to delete previous avatar")
		}
	}

	return url, nil
}
