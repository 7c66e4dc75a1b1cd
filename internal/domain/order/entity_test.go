package order_test

import (
	"testing"
	"time"

	"github.com/topupbd/topup-api/internal/domain/order"
)

func TestOrderEditableWindow(t *testing.T) {
	created := time.Now()
	o := &order.Order{Status: order.StatusPending, CreatedAt: created}

	if !o.Editable(created.Add(1 * time.Minute)) {
		t.Fatal("order one minute old should be editable")
	}
	if !o.Editable(created.Add(order.EditWindow - time.Second)) {
		t.Fatal("order just inside the window should be editable")
	}
	// Exclusive boundary: exactly at the window the edit is rejected.
	if o.Editable(created.Add(order.EditWindow)) {
		t.Fatal("order exactly at the window boundary should not be editable")
	}
	if o.Editable(created.Add(4 * time.Minute)) {
		t.Fatal("order four minutes old should not be editable")
	}

	o.Status = order.StatusApproved
	if o.Editable(created.Add(time.Second)) {
		t.Fatal("approved order should not be editable regardless of age")
	}
}

func TestOrderCancelable(t *testing.T) {
	cases := []struct {
		status order.Status
		want   bool
	}{
		{order.StatusPending, true},
		{order.StatusApproved, true},
		{order.StatusCompleted, false},
		{order.StatusCanceled, false},
		{order.StatusRejected, false},
	}

	for _, tc := range cases {
		o := &order.Order{Status: tc.status}
		if got := o.Cancelable(); got != tc.want {
			t.Errorf("Cancelable() with status %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestOrderWalletPaid(t *testing.T) {
	o := &order.Order{TransactionID: order.WalletPayReference}
	if !o.WalletPaid() {
		t.Fatal("order with the wallet sentinel should report wallet-paid")
	}

	o.TransactionID = "TX12345"
	if o.WalletPaid() {
		t.Fatal("order with a gateway reference should not report wallet-paid")
	}
}
