package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/domain/payment"
)

// CatalogReader is the slice of the catalog the checkout flow needs.
type CatalogReader interface {
	GetGame(ctx context.Context, id uuid.UUID) (*catalog.Game, error)
	GetPackage(ctx context.Context, gameID uuid.UUID, amount string, price int64) (*catalog.Package, error)
}

// MethodReader resolves the buyer's payment method selection.
type MethodReader interface {
	GetActive(ctx context.Context, id uuid.UUID) (*payment.Method, error)
}

// GatewayStager hands gateway checkouts off to the hosted payment flow.
type GatewayStager interface {
	Stage(ctx context.Context, staged *payment.StagedOrder) (string, error)
	RedirectURL(methodName string) string
}

// Store is the transactional order store.
type Store interface {
	Checkout(ctx context.Context, p CheckoutParams) (*Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
	Edit(ctx context.Context, userID, orderID uuid.UUID, playerID, transactionRef string, now time.Time) (*Order, error)
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
}

type Service struct {
	store   Store
	catalog CatalogReader
	methods MethodReader
	stager  GatewayStager
}

func NewService(store Store, catalogReader CatalogReader, methods MethodReader, stager GatewayStager) *Service {
	return &Service{store: store, catalog: catalogReader, methods: methods, stager: stager}
}

// CheckoutInput is the buyer's raw checkout submission.
type CheckoutInput struct {
	GameID            uuid.UUID
	PackageAmount     string
	PackagePrice      int64
	Quantity          int64
	PlayerID          string
	PaymentMethodID   *uuid.UUID
	UserPaymentNumber string
	TransactionRef    string
}

// CheckoutResult is either a created order (wallet and manual routes) or a
// gateway hand-off with a redirect URL and staged token.
type CheckoutResult struct {
	Order       *Order `json:"order,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	StagedToken string `json:"staged_token,omitempty"`
}

// Checkout validates the submission, resolves the payment route and either
// commits the order or stages it for the gateway. All validation runs before
// any store write: a rejected checkout leaves no trace.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*CheckoutResult, error) {
	if in.Quantity < 1 || in.Quantity > MaxQuantity {
		return nil, ErrQuantityInvalid
	}
	if strings.TrimSpace(in.PackageAmount) == "" {
		return nil, ErrPackageRequired
	}

	game, err := s.catalog.GetGame(ctx, in.GameID)
	if errors.Is(err, catalog.ErrGameNotFound) {
		return nil, ErrGameUnavailable
	}
	if err != nil {
		return nil, err
	}
	if game.Status != catalog.GameStatusActive {
		return nil, ErrGameUnavailable
	}

	playerID := strings.TrimSpace(in.PlayerID)
	if err := ValidatePlayerID(game.InputType, playerID); err != nil {
		return nil, err
	}

	pkg, err := s.catalog.GetPackage(ctx, in.GameID, in.PackageAmount, in.PackagePrice)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	params := CheckoutParams{
		UserID:         userID,
		GameID:         in.GameID,
		PackageAmount:  pkg.Amount,
		PackagePrice:   pkg.Price,
		Quantity:       in.Quantity,
		PlayerID:       playerID,
		InputTypeLabel: InputTypeLabel(game.InputType),
	}

	// No method selected means paying from the wallet balance.
	if in.PaymentMethodID == nil {
		params.Route = RouteWallet
		params.PaymentMethod = payment.WalletMethodName
		return s.commit(ctx, params)
	}

	method, err := s.methods.GetActive(ctx, *in.PaymentMethodID)
	if errors.Is(err, payment.ErrMethodNotFound) {
		return nil, ErrPaymentRequired
	}
	if err != nil {
		return nil, err
	}

	params.PaymentMethod = method.Name

	if method.Kind == payment.KindGateway {
		// Gateway checkouts write nothing: the selection is staged in Redis
		// and the buyer is redirected to the hosted payment page.
		staged := &payment.StagedOrder{
			UserID:            userID,
			OrderType:         payment.StagedTypePurchase,
			GameID:            in.GameID.String(),
			GameName:          game.Name,
			PackageAmount:     pkg.Amount,
			PackagePrice:      pkg.Price,
			Quantity:          in.Quantity,
			TotalPrice:        pkg.Price * in.Quantity,
			PlayerID:          playerID,
			PaymentMethodName: method.Name,
			PaymentNumber:     method.Number,
			PaymentLogo:       method.LogoURL,
		}
		token, err := s.stager.Stage(ctx, staged)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{
			RedirectURL: s.stager.RedirectURL(method.Name),
			StagedToken: token,
		}, nil
	}

	params.Route = RouteManual
	params.UserPaymentNumber = strings.TrimSpace(in.UserPaymentNumber)
	params.TransactionRef = strings.TrimSpace(in.TransactionRef)
	params.AdminNumber = method.Number
	if params.UserPaymentNumber == "" || params.TransactionRef == "" {
		return nil, ErrManualFieldsRequired
	}

	return s.commit(ctx, params)
}

func (s *Service) commit(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	o, err := s.store.Checkout(ctx, params)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", o.ID.String()).
		Str("user_id", o.UserID.String()).
		Str("game", o.GameName).
		Str("package", o.PackageAmount).
		Int64("quantity", o.Quantity).
		Int64("price", o.Price).
		Str("method", o.PaymentMethod).
		Msg("order created")

	return &CheckoutResult{Order: o}, nil
}

// Cancel cancels the user's order, refunding wallet-paid ones.
func (s *Service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	o, err := s.store.Cancel(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", o.ID.String()).
		Str("user_id", userID.String()).
		Str("method", o.PaymentMethod).
		Msg("order canceled")

	return o, nil
}

// Edit updates the player identifier, and optionally the payment reference,
// of a Pending order inside its edit window.
func (s *Service) Edit(ctx context.Context, userID, orderID uuid.UUID, playerID, transactionRef string) (*Order, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrPlayerIDRequired
	}
	return s.store.Edit(ctx, userID, orderID, playerID, strings.TrimSpace(transactionRef), time.Now())
}

// Get loads one of the user's orders.
func (s *Service) Get(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	return s.store.GetByID(ctx, userID, orderID)
}

// List returns the user's order history, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.store.ListByUser(ctx, userID)
}
