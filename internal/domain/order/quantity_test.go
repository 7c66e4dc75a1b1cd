package order_test

import (
	"errors"
	"testing"

	"github.com/topupbd/topup-api/internal/domain/order"
)

func ptr(n int64) *int64 { return &n }

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		name      string
		current   int64
		delta     int64
		stock     *int64
		want      int64
		wantLimit bool
	}{
		{"increment unlimited", 1, 1, nil, 2, false},
		{"decrement floors at one", 1, -1, nil, 1, false},
		{"decrement from two", 2, -1, nil, 1, false},
		{"increment within stock", 2, 1, ptr(5), 3, false},
		{"increment to stock ceiling", 4, 1, ptr(5), 5, false},
		{"increment past stock keeps current", 5, 1, ptr(5), 5, true},
		{"big jump past stock keeps current", 1, 10, ptr(3), 1, true},
		{"increment past cap stops at cap", order.MaxQuantity, 1, nil, order.MaxQuantity, false},
		{"huge jump stops at cap", 1, 1 << 61, nil, order.MaxQuantity, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := order.ClampQuantity(tc.current, tc.delta, tc.stock)
			if got != tc.want {
				t.Fatalf("ClampQuantity(%d, %d) = %d, want %d", tc.current, tc.delta, got, tc.want)
			}
			var limitErr *order.StockLimitError
			if tc.wantLimit {
				if !errors.As(err, &limitErr) {
					t.Fatalf("expected StockLimitError, got %v", err)
				}
				if limitErr.Available != *tc.stock {
					t.Fatalf("limit error reports %d available, want %d", limitErr.Available, *tc.stock)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
