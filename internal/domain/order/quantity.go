package order

import "fmt"

// MaxQuantity caps the units a single checkout can buy. It also keeps the
// price * quantity total far away from int64 overflow.
const MaxQuantity = 100

// StockLimitError is the non-fatal warning returned when a quantity
// adjustment runs into a finite stock ceiling. The quantity is left where it
// was rather than silently clamped.
type StockLimitError struct {
	Available int64
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("only %d item(s) in stock", e.Available)
}

// ClampQuantity applies a +/- adjustment to a proposed quantity. The result
// never drops below 1 or rises above MaxQuantity; if a finite stock figure is
// known and the adjustment would exceed it, the current quantity is kept and
// a StockLimitError is returned so the caller can surface the limit.
func ClampQuantity(current, delta int64, stock *int64) (int64, error) {
	next := current + delta
	if next < 1 {
		next = 1
	}
	if next > MaxQuantity {
		next = MaxQuantity
	}

	if stock != nil && *stock > 0 && next > *stock {
		return current, &StockLimitError{Available: *stock}
	}

	return next, nil
}
