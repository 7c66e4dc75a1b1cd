package moneyrequest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/topupbd/topup-api/internal/domain/payment"
)

// MethodReader resolves the payment method the top-up is claimed through.
type MethodReader interface {
	GetActive(ctx context.Context, id uuid.UUID) (*payment.Method, error)
}

// GatewayStager hands gateway top-ups off to the hosted payment flow.
type GatewayStager interface {
	Stage(ctx context.Context, staged *payment.StagedOrder) (string, error)
	RedirectURL(methodName string) string
}

type Service struct {
	repo    *Repository
	methods MethodReader
	stager  GatewayStager
}

func NewService(repo *Repository, methods MethodReader, stager GatewayStager) *Service {
	return &Service{repo: repo, methods: methods, stager: stager}
}

// CreateInput is the buyer's raw top-up submission.
type CreateInput struct {
	Amount            int64
	PaymentMethodID   uuid.UUID
	UserPaymentNumber string
	TransactionRef    string
}

// CreateResult is either a stored Pending request (manual methods) or a
// gateway hand-off with a redirect URL and staged token.
type CreateResult struct {
	Request     *MoneyRequest `json:"request,omitempty"`
	RedirectURL string        `json:"redirect_url,omitempty"`
	StagedToken string        `json:"staged_token,omitempty"`
}

// Create validates the submission and either stores a Pending request or
// stages an add-money gateway payment. Validation runs before any store
// write.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*CreateResult, error) {
	if in.Amount <= 0 {
		return nil, ErrAmountInvalid
	}
	if in.PaymentMethodID == uuid.Nil {
		return nil, ErrPaymentRequired
	}

	method, err := s.methods.GetActive(ctx, in.PaymentMethodID)
	if errors.Is(err, payment.ErrMethodNotFound) {
		return nil, ErrPaymentRequired
	}
	if err != nil {
		return nil, err
	}

	if method.Kind == payment.KindGateway {
		staged := &payment.StagedOrder{
			UserID:            userID,
			OrderType:         payment.StagedTypeAddMoney,
			GameID:            payment.WalletTopUpGameID,
			GameName:          "Add Money",
			PackageAmount:     "Wallet Top Up",
			PackagePrice:      in.Amount,
			Quantity:          1,
			TotalPrice:        in.Amount,
			PaymentMethodName: method.Name,
			PaymentNumber:     method.Number,
			PaymentLogo:       method.LogoURL,
		}
		token, err := s.stager.Stage(ctx, staged)
		if err != nil {
			return nil, err
		}
		return &CreateResult{
			RedirectURL: s.stager.RedirectURL(method.Name),
			StagedToken: token,
		}, nil
	}

	userNumber := strings.TrimSpace(in.UserPaymentNumber)
	trxRef := strings.TrimSpace(in.TransactionRef)
	if userNumber == "" || trxRef == "" {
		return nil, ErrFieldsRequired
	}

	m := &MoneyRequest{
		UserID:            userID,
		Amount:            in.Amount,
		PaymentMethod:     method.Name,
		UserPaymentNumber: userNumber,
		TransactionID:     trxRef,
		AdminNumber:       method.Number,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Info().
		Str("request_id", m.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", m.Amount).
		Str("method", m.PaymentMethod).
		Msg("money request created")

	return &CreateResult{Request: m}, nil
}

// List returns the user's top-up requests, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]MoneyRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Edit updates a Pending request inside its edit window.
func (s *Service) Edit(ctx context.Context, userID, requestID uuid.UUID, amount int64, userPaymentNumber, transactionRef string) (*MoneyRequest, error) {
	if amount <= 0 {
		return nil, ErrAmountInvalid
	}
	userPaymentNumber = strings.TrimSpace(userPaymentNumber)
	transactionRef = strings.TrimSpace(transactionRef)
	if userPaymentNumber == "" || transactionRef == "" {
		return nil, ErrFieldsRequired
	}
	return s.repo.Edit(ctx, userID, requestID, amount, userPaymentNumber, transactionRef, time.Now())
}

// Delete withdraws a Pending request.
func (s *Service) Delete(ctx context.Context, userID, requestID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, requestID)
}
