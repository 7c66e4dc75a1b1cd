package moneyrequest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/domain/payment"
)

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
	return "/nagad-payment"
}

func TestCreateValidatesBeforeStore(t *testing.T) {
	method := &payment.Method{ID: uuid.New(), Name: "Nagad Personal", Kind: payment.KindManual}
	svc := NewService(nil, &stubMethods{method: method}, &stubStager{})

	if _, err := svc.Create(context.Background(), uuid.New(), CreateInput{Amount: 0, PaymentMethodID: method.ID}); !errors.Is(err, ErrAmountInvalid) {
		t.Fatalf("expected ErrAmountInvalid, got %v", err)
	}

	// Manual top-up without the transfer evidence never reaches the repo;
	// a nil repo would panic if it did.
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Amount:          50000,
		PaymentMethodID: method.ID,
	})
	if !errors.Is(err, ErrFieldsRequired) {
		t.Fatalf("expected ErrFieldsRequired, got %v", err)
	}
}

func TestCreateGatewayStagesAddMoney(t *testing.T) {
	method := &payment.Method{ID: uuid.New(), Name: "bKash", Kind: payment.KindGateway}
	stager := &stubStager{}
	svc := NewService(nil, &stubMethods{method: method}, stager)

	userID := uuid.New()
	result, err := svc.Create(context.Background(), userID, CreateInput{
		Amount:          50000,
		PaymentMethodID: method.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if result.Request != nil {
		t.Fatal("gateway top-up must not store a request")
	}
	if result.RedirectURL == "" || result.StagedToken == "" {
		t.Fatalf("expected redirect and token, got %+v", result)
	}
	if stager.staged == nil {
		t.Fatal("expected a staged selection")
	}
	if stager.staged.GameID != payment.WalletTopUpGameID {
		t.Fatalf("staged game id = %q, want %q", stager.staged.GameID, payment.WalletTopUpGameID)
	}
	if stager.staged.OrderType != payment.StagedTypeAddMoney {
		t.Fatalf("staged type = %q, want add_money", stager.staged.OrderType)
	}
	if stager.staged.TotalPrice != 50000 {
		t.Fatalf("staged total = %d, want 50000", stager.staged.TotalPrice)
	}
}

func TestCreateUnknownMethod(t *testing.T) {
	svc := NewService(nil, &stubMethods{}, &stubStager{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Amount:          50000,
		PaymentMethodID: uuid.New(),
	})
	if !errors.Is(err, ErrPaymentRequired) {
		t.Fatalf("expected ErrPaymentRequired, got %v", err)
	}
}
