package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/topupbd/topup-api/internal/domain/payment"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 1})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	return client
}

func TestStageAndFetchRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	stager := payment.NewStager(client, time.Minute, "/bkash-payment", "/nagad-payment")

	userID := uuid.New()
	staged := &payment.StagedOrder{
		UserID:            userID,
		OrderType:         payment.StagedTypePurchase,
		GameID:            uuid.NewString(),
		GameName:          "Free Fire",
		PackageAmount:     "100 Diamond",
		PackagePrice:      8000,
		Quantity:          2,
		TotalPrice:        16000,
		PlayerID:          "5234567890",
		PaymentMethodName: "bKash",
	}

	token, err := stager.Stage(context.Background(), staged)
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	got, err := stager.Fetch(context.Background(), token)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got.UserID != userID || got.TotalPrice != 16000 || got.GameName != "Free Fire" {
		t.Fatalf("fetched selection does not match staged one: %+v", got)
	}
}

func TestFetchExpiredToken(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	stager := payment.NewStager(client, 50*time.Millisecond, "/bkash-payment", "/nagad-payment")

	token, err := stager.Stage(context.Background(), &payment.StagedOrder{
		UserID:     uuid.New(),
		OrderType:  payment.StagedTypeAddMoney,
		GameID:     payment.WalletTopUpGameID,
		TotalPrice: 50000,
	})
	if err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := stager.Fetch(context.Background(), token); !errors.Is(err, payment.ErrStagedNotFound) {
		t.Fatalf("expected ErrStagedNotFound after TTL, got %v", err)
	}
}

func TestStagingDisabledWithoutRedis(t *testing.T) {
	stager := payment.NewStager(nil, time.Minute, "/bkash-payment", "/nagad-payment")

	if _, err := stager.Stage(context.Background(), &payment.StagedOrder{}); !errors.Is(err, payment.ErrStagingDisabled) {
		t.Fatalf("expected ErrStagingDisabled, got %v", err)
	}
	if _, err := stager.Fetch(context.Background(), "any"); !errors.Is(err, payment.ErrStagingDisabled) {
		t.Fatalf("expected ErrStagingDisabled, got %v", err)
	}
}

func TestRedirectURLByMethodName(t *testing.T) {
	stager := payment.NewStager(nil, time.Minute, "/bkash-payment", "/nagad-payment")

	if got := stager.RedirectURL("bKash Gateway"); got != "/bkash-payment" {
		t.Fatalf("bKash redirect = %q", got)
	}
	if got := stager.RedirectURL("Nagad"); got != "/nagad-payment" {
		t.Fatalf("Nagad redirect = %q", got)
	}
}
