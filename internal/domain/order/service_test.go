package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/domain/order"
	"github.com/topupbd/topup-api/internal/domain/payment"
)

type stubCatalog struct {
	game *catalog.Game
	pkg  *catalog.Package
}

func (s *stubCatalog) GetGame(ctx context.Context, id uuid.UUID) (*catalog.Game, error) {
	if s.game == nil {
		return nil, catalog.ErrGameNotFound
	}
	return s.game, nil
}

func (s *stubCatalog) GetPackage(ctx context.Context, gameID uuid.UUID, amount string, price int64) (*catalog.Package, error) {
	return s.pkg, nil
}

type stubMethods struct {
	method *payment.Method
}

func (s *stubMethods) GetActive(ctx context.Context, id uuid.UUID) (*payment.Method, error) {
	if s.method == nil {
		return nil, payment.ErrMethodNotFound
	}
	return s.method, nil
}

type stubStager struct {
	staged *payment.StagedOrder
}

func (s *stubStager) Stage(ctx context.Context, staged *payment.StagedOrder) (string, error) {
	s.staged = staged
	return "token-1", nil
}

func (s *stubStager) RedirectURL(methodName string) string {
	return "/bkash-payment"
}

type stubStore struct {
	checkouts int
	params    order.CheckoutParams
}

func (s *stubStore) Checkout(ctx context.Context, p order.CheckoutParams) (*order.Order, error) {
	s.checkouts++
	s.params = p
	return &order.Order{
		ID:            uuid.New(),
		UserID:        p.UserID,
		GameName:      "Free Fire",
		PackageAmount: p.PackageAmount,
		Quantity:      p.Quantity,
		Price:         p.PackagePrice * p.Quantity,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionRef,
		Status:        order.StatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

func (s *stubStore) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (s *stubStore) Edit(ctx context.Context, userID, orderID uuid.UUID, playerID, transactionRef string, now time.Time) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (s *stubStore) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (s *stubStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	return nil, nil
}

func activeGame() *catalog.Game {
	return &catalog.Game{
		ID:        uuid.New(),
		Name:      "Free Fire",
		Status:    catalog.GameStatusActive,
		InputType: catalog.InputTypeUserID,
	}
}

func diamondPack(gameID uuid.UUID) *catalog.Package {
	return &catalog.Package{GameID: gameID, Amount: "100 Diamond", Price: 8000}
}

func newTestService(game *catalog.Game, pkg *catalog.Package, method *payment.Method) (*order.Service, *stubStore, *stubStager) {
	store := &stubStore{}
	stager := &stubStager{}
	svc := order.NewService(store, &stubCatalog{game: game, pkg: pkg}, &stubMethods{method: method}, stager)
	return svc, store, stager
}

func TestCheckoutWalletRouteWhenNoMethodSelected(t *testing.T) {
	game := activeGame()
	svc, store, _ := newTestService(game, diamondPack(game.ID), nil)

	result, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:        game.ID,
		PackageAmount: "100 Diamond",
		PackagePrice:  8000,
		Quantity:      2,
		PlayerID:      "5234567890",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Order == nil {
		t.Fatal("expected a committed order")
	}
	if store.params.Route != order.RouteWallet {
		t.Fatalf("expected wallet route, got %q", store.params.Route)
	}
	if store.params.PaymentMethod != payment.WalletMethodName {
		t.Fatalf("expected method %q, got %q", payment.WalletMethodName, store.params.PaymentMethod)
	}
}

func TestCheckoutGatewayWritesNothing(t *testing.T) {
	game := activeGame()
	method := &payment.Method{ID: uuid.New(), Name: "bKash", Kind: payment.KindGateway}
	svc, store, stager := newTestService(game, diamondPack(game.ID), method)

	methodID := method.ID
	result, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:          game.ID,
		PackageAmount:   "100 Diamond",
		PackagePrice:    8000,
		Quantity:        3,
		PlayerID:        "5234567890",
		PaymentMethodID: &methodID,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if store.checkouts != 0 {
		t.Fatalf("gateway checkout must not touch the store, saw %d checkout calls", store.checkouts)
	}
	if result.Order != nil {
		t.Fatal("gateway checkout must not return a committed order")
	}
	if result.RedirectURL == "" || result.StagedToken == "" {
		t.Fatalf("expected redirect and token, got %+v", result)
	}
	if stager.staged == nil {
		t.Fatal("expected a staged selection")
	}
	if stager.staged.TotalPrice != 24000 {
		t.Fatalf("staged total = %d, want 24000", stager.staged.TotalPrice)
	}
	if stager.staged.OrderType != payment.StagedTypePurchase {
		t.Fatalf("staged type = %q, want purchase", stager.staged.OrderType)
	}
}

func TestCheckoutManualMissingFieldsRejectedBeforeStore(t *testing.T) {
	game := activeGame()
	method := &payment.Method{ID: uuid.New(), Name: "Nagad Personal", Kind: payment.KindManual, Number: "01800000000"}
	svc, store, _ := newTestService(game, diamondPack(game.ID), method)

	methodID := method.ID
	_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:          game.ID,
		PackageAmount:   "100 Diamond",
		PackagePrice:    8000,
		Quantity:        1,
		PlayerID:        "5234567890",
		PaymentMethodID: &methodID,
		// user_payment_number and transaction_ref intentionally missing
	})
	if !errors.Is(err, order.ErrManualFieldsRequired) {
		t.Fatalf("expected ErrManualFieldsRequired, got %v", err)
	}
	if store.checkouts != 0 {
		t.Fatalf("validation failure must not reach the store, saw %d calls", store.checkouts)
	}
}

func TestCheckoutManualPassesAdminNumber(t *testing.T) {
	game := activeGame()
	method := &payment.Method{ID: uuid.New(), Name: "Nagad Personal", Kind: payment.KindManual, Number: "01800000000"}
	svc, store, _ := newTestService(game, diamondPack(game.ID), method)

	methodID := method.ID
	_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:            game.ID,
		PackageAmount:     "100 Diamond",
		PackagePrice:      8000,
		Quantity:          1,
		PlayerID:          "5234567890",
		PaymentMethodID:   &methodID,
		UserPaymentNumber: "01711111111",
		TransactionRef:    "TX99887766",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if store.params.Route != order.RouteManual {
		t.Fatalf("expected manual route, got %q", store.params.Route)
	}
	if store.params.AdminNumber != "01800000000" {
		t.Fatalf("admin number not carried: %q", store.params.AdminNumber)
	}
}

func TestCheckoutUnavailableGame(t *testing.T) {
	game := activeGame()
	game.Status = catalog.GameStatusUnavailable
	svc, store, _ := newTestService(game, diamondPack(game.ID), nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:        game.ID,
		PackageAmount: "100 Diamond",
		PackagePrice:  8000,
		Quantity:      1,
		PlayerID:      "5234567890",
	})
	if !errors.Is(err, order.ErrGameUnavailable) {
		t.Fatalf("expected ErrGameUnavailable, got %v", err)
	}
	if store.checkouts != 0 {
		t.Fatal("unavailable game must not reach the store")
	}
}

func TestCheckoutInvalidPlayerID(t *testing.T) {
	game := activeGame()
	svc, store, _ := newTestService(game, diamondPack(game.ID), nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:        game.ID,
		PackageAmount: "100 Diamond",
		PackagePrice:  8000,
		Quantity:      1,
		PlayerID:      "not a number",
	})
	if !errors.Is(err, order.ErrPlayerIDInvalid) {
		t.Fatalf("expected ErrPlayerIDInvalid, got %v", err)
	}
	if store.checkouts != 0 {
		t.Fatal("invalid player id must not reach the store")
	}
}

func TestCheckoutStalePackage(t *testing.T) {
	game := activeGame()
	svc, _, _ := newTestService(game, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
		GameID:        game.ID,
		PackageAmount: "100 Diamond",
		PackagePrice:  7000, // repriced since the page loaded
		Quantity:      1,
		PlayerID:      "5234567890",
	})
	if !errors.Is(err, order.ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestCheckoutQuantityValidation(t *testing.T) {
	game := activeGame()

	cases := []struct {
		name     string
		quantity int64
	}{
		{"zero", 0},
		{"negative", -1},
		{"above cap", order.MaxQuantity + 1},
		// A huge quantity would wrap price * quantity around int64 and turn
		// the total into zero or garbage; it must be rejected outright.
		{"overflow scale", 1 << 61},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, stager := newTestService(game, diamondPack(game.ID), nil)

			_, err := svc.Checkout(context.Background(), uuid.New(), order.CheckoutInput{
				GameID:        game.ID,
				PackageAmount: "100 Diamond",
				PackagePrice:  8000,
				Quantity:      tc.quantity,
				PlayerID:      "5234567890",
			})
			if !errors.Is(err, order.ErrQuantityInvalid) {
				t.Fatalf("expected ErrQuantityInvalid, got %v", err)
			}
			if store.checkouts != 0 {
				t.Fatalf("invalid quantity must not reach the store, saw %d calls", store.checkouts)
			}
			if stager.staged != nil {
				t.Fatal("invalid quantity must not be staged")
			}
		})
	}
}
