package catalog

import "testing"

func TestParseLegacyStock(t *testing.T) {
	cases := []struct {
		raw  string
		want *int64
	}{
		{"25", int64ptr(25)},
		{" 7 ", int64ptr(7)},
		{"0", int64ptr(0)},
		{"-3", int64ptr(0)},
		{"", nil},
		{"unlimited", nil},
		{"N/A", nil},
		{"12abc", nil},
	}

	for _, tc := range cases {
		got := ParseLegacyStock(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("ParseLegacyStock(%q) = %d, want unlimited", tc.raw, *got)
		case tc.want != nil && got == nil:
			t.Errorf("ParseLegacyStock(%q) = unlimited, want %d", tc.raw, *tc.want)
		case tc.want != nil && got != nil && *got != *tc.want:
			t.Errorf("ParseLegacyStock(%q) = %d, want %d", tc.raw, *got, *tc.want)
		}
	}
}

func TestPackageOriginalPrice(t *testing.T) {
	cases := []struct {
		price    int64
		discount int
		want     int64
	}{
		{8000, 0, 8000},
		{8000, 20, 10000},
		{7500, 25, 10000},
		{999, 10, 1110}, // rounds up
		{8000, 100, 8000},
		{8000, -5, 8000},
	}

	for _, tc := range cases {
		p := Package{Price: tc.price, DiscountPercent: tc.discount}
		if got := p.OriginalPrice(); got != tc.want {
			t.Errorf("OriginalPrice(price=%d, discount=%d) = %d, want %d", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestPackageStockStates(t *testing.T) {
	unlimited := Package{}
	if !unlimited.Unlimited() || unlimited.SoldOut() {
		t.Fatal("nil stock must mean unlimited, never sold out")
	}

	empty := Package{Stock: int64ptr(0)}
	if empty.Unlimited() || !empty.SoldOut() {
		t.Fatal("zero stock must mean sold out")
	}

	some := Package{Stock: int64ptr(3)}
	if some.Unlimited() || some.SoldOut() {
		t.Fatal("positive stock is neither unlimited nor sold out")
	}
}

func int64ptr(n int64) *int64 { return &n }
