package order_test

import (
	"errors"
	"testing"

	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/domain/order"
)

func TestValidatePlayerID(t *testing.T) {
	cases := []struct {
		name      string
		inputType catalog.InputType
		value     string
		wantErr   error
	}{
		{"empty value", catalog.InputTypeUserID, "   ", order.ErrPlayerIDRequired},

		{"numeric user id", catalog.InputTypeUserID, "5234567890", nil},
		{"user id with letters", catalog.InputTypeUserID, "player99", order.ErrPlayerIDInvalid},
		{"user id with space", catalog.InputTypeUserID, "52345 67890", order.ErrPlayerIDInvalid},
		{"user id with symbols", catalog.InputTypeUserID, "52345-67890", nil},

		{"valid mobile", catalog.InputTypeMobileNumber, "01712345678", nil},
		{"mobile too short", catalog.InputTypeMobileNumber, "0171234567", order.ErrPlayerIDInvalid},
		{"mobile too long", catalog.InputTypeMobileNumber, "017123456789", order.ErrPlayerIDInvalid},
		{"mobile with letters", catalog.InputTypeMobileNumber, "01712x45678", order.ErrPlayerIDInvalid},

		{"valid email", catalog.InputTypeEmail, "player1@gmail.com", nil},
		{"email uppercase", catalog.InputTypeEmail, "Player@gmail.com", order.ErrPlayerIDInvalid},
		{"email wrong tld", catalog.InputTypeEmail, "player@gmail.net", order.ErrPlayerIDInvalid},
		{"email missing at", catalog.InputTypeEmail, "playergmail.com", order.ErrPlayerIDInvalid},

		{"free text anything", catalog.InputTypeFreeText, "whatever goes here", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := order.ValidatePlayerID(tc.inputType, tc.value)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidatePlayerID(%q, %q) = %v, want %v", tc.inputType, tc.value, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePlayerIDDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if err := order.ValidatePlayerID(catalog.InputTypeMobileNumber, "01712345678"); err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
		if err := order.ValidatePlayerID(catalog.InputTypeMobileNumber, "bad"); !errors.Is(err, order.ErrPlayerIDInvalid) {
			t.Fatalf("run %d: expected ErrPlayerIDInvalid, got %v", i, err)
		}
	}
}

func TestInputTypeLabel(t *testing.T) {
	cases := []struct {
		inputType catalog.InputType
		want      string
	}{
		{catalog.InputTypeEmail, "Email"},
		{catalog.InputTypeMobileNumber, "Mobile Number"},
		{catalog.InputTypeUserID, "Player ID"},
		{catalog.InputTypeFreeText, "Player ID"},
	}

	for _, tc := range cases {
		if got := order.InputTypeLabel(tc.inputType); got != tc.want {
			t.Errorf("InputTypeLabel(%q) = %q, want %q", tc.inputType, got, tc.want)
		}
	}
}
