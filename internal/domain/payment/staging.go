package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const stagedKeyPrefix = "gateway:staged:"

// StagedOrderType distinguishes what the gateway payment is for.
type StagedOrderType string

const (
	StagedTypePurchase StagedOrderType = "purchase"
	StagedTypeAddMoney StagedOrderType = "add_money"
)

// WalletTopUpGameID is the pseudo game id staged for add-money gateway
// payments, kept for compatibility with the existing confirmation pages.
const WalletTopUpGameID = "WALLET_TOPUP"

// StagedOrder is the pending selection handed to the hosted gateway flow.
// No stock is reserved and nothing is written to the ledger at staging time;
// the record only pins the buyer's selection so the confirmation page cannot
// drift from what was quoted. It expires with the staging TTL.
type StagedOrder struct {
	Token             string          `json:"token"`
	UserID            uuid.UUID       `json:"user_id"`
	OrderType         StagedOrderType `json:"order_type"`
	GameID            string          `json:"game_id"`
	GameName          string          `json:"game_name"`
	PackageAmount     string          `json:"package_amount"`
	PackagePrice      int64           `json:"package_price"`
	Quantity          int64           `json:"quantity"`
	TotalPrice        int64           `json:"total_price"`
	PlayerID          string          `json:"player_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	PaymentNumber     string          `json:"payment_number"`
	PaymentLogo       string          `json:"payment_logo"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Stager keeps staged gateway selections in Redis with a TTL.
type Stager struct {
	redis    *redis.Client
	ttl      time.Duration
	bkashURL string
	nagadURL string
}

func NewStager(redisClient *redis.Client, ttl time.Duration, bkashURL, nagadURL string) *Stager {
	return &Stager{redis: redisClient, ttl: ttl, bkashURL: bkashURL, nagadURL: nagadURL}
}

// Stage stores the selection and returns its token.
func (s *Stager) Stage(ctx context.Context, staged *StagedOrder) (string, error) {
	if s == nil || s.redis == nil {
		return "", ErrStagingDisabled
	}

	staged.Token = uuid.New().String()
	staged.CreatedAt = time.Now()

	payload, err := json.Marshal(staged)
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, stagedKeyPrefix+staged.Token, payload, s.ttl).Err(); err != nil {
		return "", err
	}

	log.Info().
		Str("token", staged.Token).
		Str("user_id", staged.UserID.String()).
		Str("method", staged.PaymentMethodName).
		Int64("total", staged.TotalPrice).
		Msg("gateway order staged")

	return staged.Token, nil
}

// Fetch loads a staged selection by token. The external confirmation flow
// reads it back before completing payment.
func (s *Stager) Fetch(ctx context.Context, token string) (*StagedOrder, error) {
	if s == nil || s.redis == nil {
		return nil, ErrStagingDisabled
	}

	payload, err := s.redis.Get(ctx, stagedKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStagedNotFound
	}
	if err != nil {
		return nil, err
	}

	var staged StagedOrder
	if err := json.Unmarshal(payload, &staged); err != nil {
		return nil, err
	}
	return &staged, nil
}

// RedirectURL picks the hosted page for a gateway method by name.
func (s *Stager) RedirectURL(methodName string) string {
	if s == nil {
		return ""
	}
	if strings.Contains(strings.ToLower(methodName), "bkash") {
		return s.bkashURL
	}
	return s.nagadURL
}
